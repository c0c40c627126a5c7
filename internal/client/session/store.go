package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/repositories/metadata"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/dbx"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/logging"
)

// Storage keys, namespaced to avoid collision with unrelated persisted data.
const (
	userKey     = "tshwane_transit_user"
	tokenKey    = "tshwane_transit_token"
	deviceIDKey = "tshwane_transit_device_id"
)

// Store keeps the in-memory session State and persists it across restarts.
//
// The in-memory state is updated only through SetSession, ClearSession and
// EndRestore; subscribers are notified after every change.
type Store struct {
	db     *sql.DB
	logger logging.Logger

	mu   sync.RWMutex
	cur  State
	subs []func(State)
}

// NewStore creates a Store over the given database. The initial state is
// empty with Restoring set, matching process start.
func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
		cur:    State{Restoring: true},
	}
}

// Current returns a snapshot of the in-memory state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe registers fn to be called after every state change. The callback
// runs synchronously on the mutating goroutine and must not block.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.cur)
	st := s.cur
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// SetSession replaces the in-memory session with the given profile and
// credential.
func (s *Store) SetSession(profile *models.UserProfile, credential string) {
	s.update(func(st *State) {
		st.Profile = profile
		st.Credential = credential
	})
}

// ClearSession drops the in-memory profile and credential.
func (s *Store) ClearSession() {
	s.update(func(st *State) {
		st.Profile = nil
		st.Credential = ""
	})
}

// EndRestore marks the startup restore as finished.
func (s *Store) EndRestore() {
	s.update(func(st *State) {
		st.Restoring = false
	})
}

// Load reads the persisted profile and credential. A missing, partial or
// unparsable record is the "no session" case, not an error: it returns
// (nil, "") and logs the reason.
func (s *Store) Load(ctx context.Context) (*models.UserProfile, string) {
	repo := metadata.NewSQLiteRepository(s.db)

	rawUser, err := repo.Get(ctx, userKey)
	if err != nil {
		s.logger.Warn(ctx, "reading stored profile failed, treating as no session", "error", err)
		return nil, ""
	}
	rawToken, err := repo.Get(ctx, tokenKey)
	if err != nil {
		s.logger.Warn(ctx, "reading stored credential failed, treating as no session", "error", err)
		return nil, ""
	}

	if len(rawUser) == 0 || len(rawToken) == 0 {
		return nil, ""
	}

	var profile models.UserProfile
	if err := json.Unmarshal(rawUser, &profile); err != nil {
		s.logger.Warn(ctx, "stored profile is unparsable, treating as no session", "error", err)
		return nil, ""
	}

	return &profile, string(rawToken)
}

// Save persists both session fields in a single transaction, so a reader can
// never observe the profile without the credential or vice versa.
func (s *Store) Save(ctx context.Context, profile *models.UserProfile, credential string) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, userKey, raw); err != nil {
			return err
		}
		return repo.Set(ctx, tokenKey, []byte(credential))
	})
}

// Clear removes both persisted session fields. Clearing an already-empty
// store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, userKey); err != nil {
			return err
		}
		return repo.Delete(ctx, tokenKey)
	})
}

// DeviceID returns this installation's stable identifier, generating and
// persisting one on first use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, deviceIDKey)
	if err != nil {
		return "", err
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, deviceIDKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}
