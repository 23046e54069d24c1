// Package credentials is the client's registry of sign-up records.
//
// All records live under a single storage key as one JSON array, mirroring
// how a browser client keeps them in localStorage. A value that cannot be
// decoded is read as an empty registry. Passwords are kept as an argon2id
// salt and verifier; verification is still an exact match on the password.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bijligrid/internal/client/storage"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/cryptox"
)

// UsersKey is the storage key holding the serialized registry.
const UsersKey = "bijli_users"

// Identity is what a successful verification yields.
type Identity struct {
	Username string
	Email    string
}

type record struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type Store struct {
	repo storage.Repository
	mu   sync.Mutex
}

func NewStore(repo storage.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) load(ctx context.Context) ([]record, error) {
	raw, err := s.repo.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

func (s *Store) save(ctx context.Context, records []record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.repo.Set(ctx, UsersKey, raw); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// Register appends a record for email. It fails with common.ErrDuplicateEmail
// when email is already registered, whatever the other fields are.
func (s *Store) Register(ctx context.Context, email, username string, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.Email == email {
			return common.ErrDuplicateEmail
		}
	}

	salt := cryptox.NewSalt()
	records = append(records, record{
		Email:    email,
		Username: username,
		Salt:     salt,
		Verifier: cryptox.HashPassword(password, salt),
	})

	return s.save(ctx, records)
}

// Verify returns the identity registered under email when password matches.
// Any mismatch, including an unknown email, is common.ErrInvalidCredentials.
func (s *Store) Verify(ctx context.Context, email string, password []byte) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return Identity{}, err
	}

	for _, r := range records {
		if r.Email != email {
			continue
		}
		if cryptox.CheckPassword(password, r.Salt, r.Verifier) {
			return Identity{Username: r.Username, Email: r.Email}, nil
		}
		break
	}

	return Identity{}, common.ErrInvalidCredentials
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
