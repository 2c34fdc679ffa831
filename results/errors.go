// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package results

import "errors"

var (
	// ErrInvalidLimit indicates a negative storage cap.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrNilMonitor indicates that a nil monitor was supplied.
	ErrNilMonitor = errors.New("nil monitor")

	// ErrNilRepository indicates that a nil run repository was supplied.
	ErrNilRepository = errors.New("nil repository")

	// ErrInvalidBatchSize indicates a batch size below 1.
	ErrInvalidBatchSize = errors.New("invalid batch size")
)
