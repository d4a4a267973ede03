// Package session keeps the "stay logged in" state between runs.
package session

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akrylysov/pogreb"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

const (
	sessionPrefix = "session:"
	currentKey    = "current"
)

// Session is the record stored under a token.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists sessions in a pogreb key/value database.
type Store struct {
	db  *pogreb.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (or creates) the session database at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := pogreb.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Create starts a session for userID and returns it.
func (s *Store) Create(userID string) (Session, error) {
	now := s.now().UTC()
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(sess); err != nil {
		return Session{}, err
	}
	if err := s.db.Put([]byte(sessionPrefix+sess.Token), buf.Bytes()); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Lookup returns the session for token. Expired sessions are removed.
func (s *Store) Lookup(token string) (Session, error) {
	raw, err := s.db.Get([]byte(sessionPrefix + token))
	if err != nil {
		return Session{}, err
	}
	if raw == nil {
		return Session{}, ErrSessionNotFound
	}
	var sess Session
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		_ = s.Delete(token)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Delete removes token. It also clears the current pointer if it names token.
func (s *Store) Delete(token string) error {
	if err := s.db.Delete([]byte(sessionPrefix + token)); err != nil {
		return err
	}
	cur, err := s.db.Get([]byte(currentKey))
	if err != nil {
		return err
	}
	if string(cur) == token {
		return s.db.Delete([]byte(currentKey))
	}
	return nil
}

// SetCurrent remembers token as the session to restore on the next start.
func (s *Store) SetCurrent(token string) error {
	return s.db.Put([]byte(currentKey), []byte(token))
}

// Current returns the remembered session, if it is still valid.
func (s *Store) Current() (Session, error) {
	cur, err := s.db.Get([]byte(currentKey))
	if err != nil {
		return Session{}, err
	}
	if len(cur) == 0 {
		return Session{}, ErrSessionNotFound
	}
	sess, err := s.Lookup(string(cur))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			_ = s.db.Delete([]byte(currentKey))
		}
		return Session{}, err
	}
	return sess, nil
}

// RevokeUser deletes every session belonging to userID.
func (s *Store) RevokeUser(userID string) error {
	return s.sweep(func(sess Session) bool { return sess.UserID == userID })
}

// Purge deletes expired sessions.
func (s *Store) Purge() error {
	now := s.now()
	return s.sweep(func(sess Session) bool { return !now.Before(sess.ExpiresAt) })
}

func (s *Store) sweep(match func(Session) bool) error {
	var doomed []string
	it := s.db.Items()
	for {
		k, v, err := it.Next()
		if errors.Is(err, pogreb.ErrIterationDone) {
			break
		}
		if err != nil {
			return err
		}
		key := string(k)
		if !strings.HasPrefix(key, sessionPrefix) {
			continue
		}
		var sess Session
		if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&sess); err != nil || match(sess) {
			doomed = append(doomed, strings.TrimPrefix(key, sessionPrefix))
		}
	}
	for _, token := range doomed {
		if err := s.Delete(token); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}
