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


package scan

import "errors"

var (
	// ErrNoRoots is returned when an engine is created without search locations.
	ErrNoRoots = errors.New("at least one root is required")

	// ErrConditionRequired is returned when an engine is created without a condition.
	ErrConditionRequired = errors.New("condition required")

	// ErrRunInProgress is returned when an engine operation conflicts with a
	// run that is still in flight.
	ErrRunInProgress = errors.New("run in progress")

	// ErrValueArity indicates a field source returned the wrong number of values.
	ErrValueArity = errors.New("value count does not match source headers")
)
