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


package condition

import "errors"

var (
	// ErrNoChildren is returned when evaluating an And/Or with no children.
	ErrNoChildren = errors.New("combinator requires at least one child")

	// ErrEmptyPattern indicates an empty pattern or literal set.
	ErrEmptyPattern = errors.New("pattern cannot be empty")

	// ErrInvalidPattern indicates a malformed pattern.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrEmptyName indicates an empty leaf name.
	ErrEmptyName = errors.New("leaf name cannot be empty")

	// ErrNilPredicate indicates a nil predicate function.
	ErrNilPredicate = errors.New("predicate function required")

	// ErrInvalidRange indicates an inverted or negative size range.
	ErrInvalidRange = errors.New("invalid size range")
)
