package store

import (
	"context"
	"strings"
	"time"

	"lessoncast/types"
)

func userKey(id string) string         { return "user:" + id }
func userEmailKey(email string) string { return "user:email:" + strings.ToLower(email) }

// storedUser is the persisted shape. types.User hides Hash and Salt from API
// serialization, so the store keeps its own record.
type storedUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      types.Role `json:"role"`
	Hash      string     `json:"hash"`
	Salt      string     `json:"salt"`
	CreatedAt time.Time  `json:"created_at"`
}

// PutUser stores a user and indexes the account by email.
func (s *Store) PutUser(ctx context.Context, u *types.User) error {
	rec := storedUser{
		ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
		Hash: u.Hash, Salt: u.Salt, CreatedAt: u.CreatedAt,
	}
	if err := s.putJSON(ctx, userKey(u.ID), rec); err != nil {
		return err
	}
	return s.rdb.Set(ctx, userEmailKey(u.Email), u.ID, 0).Err()
}

// GetUser fetches a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*types.User, error) {
	var rec storedUser
	if err := s.getJSON(ctx, userKey(id), &rec); err != nil {
		return nil, err
	}
	return &types.User{
		ID: rec.ID, Email: rec.Email, Name: rec.Name, Role: rec.Role,
		Hash: rec.Hash, Salt: rec.Salt, CreatedAt: rec.CreatedAt,
	}, nil
}

// GetUserByEmail resolves an account through the email index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	id, err := s.rdb.Get(ctx, userEmailKey(email)).Result()
	if err != nil {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, id)
}
