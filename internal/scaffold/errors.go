package scaffold

import (
	"errors"
	"fmt"
)

// Stage names one step of the pipeline
type Stage string

const (
	StagePreflight  Stage = "preflight"
	StageGenerate   Stage = "generate"
	StageFeatures   Stage = "features"
	StageInstall    Stage = "install"
	StageUIKit      Stage = "ui-kit"
	StageMonitoring Stage = "monitoring"
	StageEditor     Stage = "editor"
	StageVCS        Stage = "vcs"
	StageRemote     Stage = "remote"
)

var (
	// ErrNodeTooOld is returned by Preflight when node is older than the configured minimum
	ErrNodeTooOld = errors.New("node version is too old")

	// ErrProjectNotCreated is returned when the generator exits cleanly but
	// left no project directory behind
	ErrProjectNotCreated = errors.New("project directory was not created")
)

// StageError is returned by Run when a stage fails that the project cannot
// be finished without. Whatever was written before the failure stays on disk.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
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
