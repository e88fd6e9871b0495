package services

import (
	"errors"
	"fmt"
)

// ErrMissingURL rejects a request before any browser is started.
var ErrMissingURL = errors.New("Missing URL")

// ErrLocatorNotFound is returned by Page implementations when a selector matches nothing.
var ErrLocatorNotFound = errors.New("locator not found")

// Stage identifies the pipeline step an error came from.
type Stage string

const (
	StageLaunch      Stage = "launch"
	StageNavigation  Stage = "navigation"
	StageInteraction Stage = "interaction"
	StageForm        Stage = "form"
	StageSubmission  Stage = "submission"
	StageOutcome     Stage = "outcome"
)

// StageError is a fatal pipeline failure.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the stage of a pipeline error, or "" for anything else.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
