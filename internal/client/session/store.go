// Package session persists the signed-in user between runs and tells
// interested parties when it changes.
//
// The user record lives in the local sqlite database under the metadata key
// "user". Every Save and Clear is published to subscribers; Watch does the
// same for writes made by another process sharing the database.
package session

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

// ErrInvalidUser is returned by Save for a user without an id or token.
var ErrInvalidUser = errors.New("session user must have an id and a token")

// Listener receives the new session state; nil means signed out.
type Listener func(user *models.User)

// Store is the single source of truth for the session. It is safe for
// concurrent use.
type Store struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
	// last is the serialized record as last seen by this process; Watch
	// compares against it to tell foreign writes from our own.
	last []byte
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		db:        db,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// Save replaces the stored user and notifies subscribers.
func (s *Store) Save(ctx context.Context, user *models.User) error {
	if !user.Valid() {
		return ErrInvalidUser
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	savedAt := s.now().UTC().Format(time.RFC3339)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionUserKey, raw); err != nil {
			return err
		}
		return repo.Set(ctx, common.SessionSavedAtKey, []byte(savedAt))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.remember(raw)
	s.publish(cloneUser(user))
	return nil
}

// Load returns the stored user, or nil when signed out. A record that does
// not decode into a usable user is discarded.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionUserKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	user, ok := decode(raw)
	if !ok {
		s.log.Warn(ctx, "discarding malformed session record", "bytes", len(raw))
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	s.remember(raw)
	return user, nil
}

// Clear removes the stored user and notifies subscribers.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.SessionUserKey, common.SessionSavedAtKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.remember(nil)
	s.publish(nil)
	return nil
}

// SavedAt reports when the current session was stored. The zero time means
// no session or an unreadable timestamp.
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionSavedAtKey)
	if err != nil || raw == nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

// Authenticated reports whether a usable session is stored.
func (s *Store) Authenticated(ctx context.Context) bool {
	user, err := s.Load(ctx)
	return err == nil && user != nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token(ctx context.Context) string {
	user, err := s.Load(ctx)
	if err != nil || user == nil {
		return ""
	}
	return user.Token
}

// Subscribe registers fn for every subsequent change. The returned func
// unregisters it and may be called more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// refresh re-reads the record and publishes it if it differs from what this
// process last saw.
func (s *Store) refresh(ctx context.Context) error {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionUserKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := !bytes.Equal(raw, s.last)
	s.mu.Unlock()
	if !changed {
		return nil
	}

	if raw == nil {
		s.remember(nil)
		s.publish(nil)
		return nil
	}

	// Load publishes nil itself when it has to discard the record.
	user, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if user != nil {
		s.publish(user)
	}
	return nil
}

func (s *Store) remember(raw []byte) {
	s.mu.Lock()
	s.last = bytes.Clone(raw)
	s.mu.Unlock()
}

func (s *Store) publish(user *models.User) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(cloneUser(user))
	}
}

func decode(raw []byte) (*models.User, bool) {
	if raw == nil {
		return nil, true
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, false
	}
	if !u.Valid() {
		return nil, false
	}
	return &u, true
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
