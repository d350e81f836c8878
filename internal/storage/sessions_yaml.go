package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"boxtime/internal/core/model"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const sessionsFileName = "sessions.yaml"

var (
	// ErrSessionNotFound indicates no session matches a reference.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAmbiguousSession indicates a title matches more than one session.
	ErrAmbiguousSession = errors.New("session reference is ambiguous")
)

type sessionsFile struct {
	Sessions []model.Session `yaml:"sessions"`
}

// ListSessions returns the stored sessions in file order.
func (store *Store) ListSessions() ([]model.Session, error) {
	var fileData sessionsFile
	if _, err := store.readYAML(sessionsFileName, &fileData); err != nil {
		return nil, err
	}
	for _, session := range fileData.Sessions {
		if err := session.Validate(); err != nil {
			return nil, fmt.Errorf("session %q: %w", session.Title, err)
		}
	}
	return fileData.Sessions, nil
}

// FindSession resolves ref as a session ID, or else as a title compared
// after NFKC normalization and case folding.
func (store *Store) FindSession(ref string) (model.Session, error) {
	sessions, err := store.ListSessions()
	if err != nil {
		return model.Session{}, err
	}

	for _, session := range sessions {
		if session.ID == ref {
			return session, nil
		}
	}

	wanted := normalizeTitle(ref)
	var matches []model.Session
	for _, session := range sessions {
		if normalizeTitle(session.Title) == wanted {
			matches = append(matches, session)
		}
	}
	switch len(matches) {
	case 0:
		return model.Session{}, fmt.Errorf("%w: %q", ErrSessionNotFound, ref)
	case 1:
		return matches[0], nil
	}
	return model.Session{}, fmt.Errorf("%w: %q matches %d sessions", ErrAmbiguousSession, ref, len(matches))
}

// SaveSession inserts or replaces a session by ID. A missing ID or date is
// filled in; the stored session is returned.
func (store *Store) SaveSession(session model.Session) (model.Session, error) {
	session.Title = strings.TrimSpace(session.Title)
	if session.Title == "" {
		return model.Session{}, errors.New("session title is empty")
	}
	if err := session.Validate(); err != nil {
		return model.Session{}, fmt.Errorf("session %q: %w", session.Title, err)
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.Date.IsZero() {
		session.Date = store.clock().UTC().Truncate(time.Second)
	}

	sessions, err := store.ListSessions()
	if err != nil {
		return model.Session{}, err
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, session)
	}

	if err := store.writeYAML(sessionsFileName, sessionsFile{Sessions: sessions}); err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// DeleteSession removes the session ref resolves to.
func (store *Store) DeleteSession(ref string) error {
	target, err := store.FindSession(ref)
	if err != nil {
		return err
	}
	sessions, err := store.ListSessions()
	if err != nil {
		return err
	}

	kept := sessions[:0]
	for _, session := range sessions {
		if session.ID != target.ID {
			kept = append(kept, session)
		}
	}
	return store.writeYAML(sessionsFileName, sessionsFile{Sessions: kept})
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(title)))
}
