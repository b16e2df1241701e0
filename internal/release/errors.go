// SPDX-License-Identifier: MPL-2.0

package release

import "fmt"

// Step identifies a pipeline stage for error classification.
type Step string

const (
	// StepResolveTag covers release tag resolution.
	StepResolveTag Step = "resolve tag"
	// StepEnumerateSubmodules covers discovery of registered submodules.
	StepEnumerateSubmodules Step = "enumerate submodules"
	// StepSnapshot covers snapshotting the root or a submodule repository.
	StepSnapshot Step = "snapshot"
	// StepAssemble covers container creation and entry appends.
	StepAssemble Step = "assemble archive"
	// StepPrune covers the structural rewrite that drops excluded paths.
	StepPrune Step = "prune archive"
	// StepPackage covers compression into the final artifact.
	StepPackage Step = "package archive"
)

// StepError wraps a pipeline failure with the step that produced it. The run
// is aborted at the first StepError; there is no partial-success state.
type StepError struct {
	Step Step
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// stepErr wraps err as a StepError for the given step.
func stepErr(step Step, err error) error {
	return &StepError{Step: step, Err: err}
}
