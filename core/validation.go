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

import "fmt"

// ValidateRun validates a Run according to domain rules.
//
// Validation rules:
//   - At least one root must be configured
//   - Headers must be non-empty (the two fixed columns always exist)
//   - Status must be a known RunStatus
//
// NOT validated (populated by the engine or storage):
//   - Id (0 is valid before a database sequence assigns one)
//   - Tallies and timestamps (written as the run progresses)
func ValidateRun(run *Run) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidRun)
	}

	if len(run.Roots) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrNoRoots)
	}

	if len(run.Headers) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrNoHeaders)
	}

	if err := ValidateRunStatus(run.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRun, err)
	}

	return nil
}

// ValidateRunStatus validates a RunStatus value.
func ValidateRunStatus(status RunStatus) error {
	switch status {
	case RunStatusRunning, RunStatusCompleted, RunStatusCancelled:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRunStatus, status)
	}
}

// ValidateFailureStage validates a FailureStage value.
func ValidateFailureStage(stage FailureStage) error {
	switch stage {
	case StageTraverse, StageEvaluate, StageExtract, StageAction:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidFailureStage, stage)
	}
}

// ValidateMatchRecord validates a MatchRecord according to domain rules.
//
// Validation rules:
//   - Filename must not be empty
//
// NOT validated:
//   - Values (length is checked against the run schema by the engine)
//   - Id, RunId, Seq (populated by storage and the recorder)
func ValidateMatchRecord(record *MatchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMatchRecord)
	}

	if record.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRecord, ErrEmptyFilename)
	}

	return nil
}

// ValidateExceptionRecord validates an ExceptionRecord according to domain rules.
//
// Validation rules:
//   - Stage must be a known FailureStage
//   - Message must not be empty
//
// Filename and Path may be empty: traversal failures are not tied to a file.
func ValidateExceptionRecord(record *ExceptionRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidExceptionRecord)
	}

	if err := ValidateFailureStage(record.Stage); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExceptionRecord, err)
	}

	if record.Message == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrInvalidExceptionRecord)
	}

	return nil
}
