package storage

import (
	"boxtime/internal/core/model"
)

const activeFileName = "active.yaml"

// ActiveKind tells what the last selected run was.
type ActiveKind string

const (
	ActiveNone     ActiveKind = "none"
	ActiveSession  ActiveKind = "session"
	ActiveExercise ActiveKind = "exercise"
)

// ActiveState is the selection the timer resumes with.
type ActiveState struct {
	Kind      ActiveKind
	SessionID string
	Exercise  model.Exercise
}

type yamlActive struct {
	SessionID string          `yaml:"session_id,omitempty"`
	Exercise  *model.Exercise `yaml:"exercise,omitempty"`
}

// SaveActiveSession marks a stored session as the active selection.
func (store *Store) SaveActiveSession(sessionID string) error {
	return store.writeYAML(activeFileName, yamlActive{SessionID: sessionID})
}

// SaveActiveExercise marks a single ad-hoc exercise as the active selection.
func (store *Store) SaveActiveExercise(exercise model.Exercise) error {
	if err := exercise.Validate(); err != nil {
		return err
	}
	return store.writeYAML(activeFileName, yamlActive{Exercise: &exercise})
}

// LoadActive returns the active selection, or ActiveNone when nothing was saved.
func (store *Store) LoadActive() (ActiveState, error) {
	var fileData yamlActive
	found, err := store.readYAML(activeFileName, &fileData)
	if err != nil || !found {
		return ActiveState{Kind: ActiveNone}, err
	}

	switch {
	case fileData.SessionID != "":
		return ActiveState{Kind: ActiveSession, SessionID: fileData.SessionID}, nil
	case fileData.Exercise != nil:
		return ActiveState{Kind: ActiveExercise, Exercise: *fileData.Exercise}, nil
	}
	return ActiveState{Kind: ActiveNone}, nil
}

// ClearActive forgets the active selection.
func (store *Store) ClearActive() error {
	return store.remove(activeFileName)
}
