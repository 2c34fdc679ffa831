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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRun indicates a Run failed validation.
	ErrInvalidRun = errors.New("invalid run")

	// ErrInvalidMatchRecord indicates a MatchRecord failed validation.
	ErrInvalidMatchRecord = errors.New("invalid match record")

	// ErrInvalidExceptionRecord indicates an ExceptionRecord failed validation.
	ErrInvalidExceptionRecord = errors.New("invalid exception record")

	// ErrInvalidRunStatus indicates an invalid RunStatus value.
	ErrInvalidRunStatus = errors.New("invalid run status")

	// ErrInvalidFailureStage indicates an invalid FailureStage value.
	ErrInvalidFailureStage = errors.New("invalid failure stage")

	// ErrEmptyFilename indicates the Filename field is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrNoRoots indicates a run has no search locations.
	ErrNoRoots = errors.New("at least one root is required")

	// ErrNoHeaders indicates a run is missing its resolved header list.
	ErrNoHeaders = errors.New("headers cannot be empty")
)
