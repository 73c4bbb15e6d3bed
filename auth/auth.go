package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lessoncast/config"
	"lessoncast/store"
	"lessoncast/types"
)

// ErrInvalidCredentials is returned when email or password do not check out.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the result of verifying a session token.
type Identity struct {
	UserID string     `json:"user_id"`
	Role   types.Role `json:"role"`
}

// Sessions issues and verifies opaque session tokens stored in Redis with a
// TTL. Tokens are random, carry no claims themselves, and are revoked by
// deleting the key.
type Sessions struct {
	rdb   *redis.Client
	users *store.Store
}

// NewSessions wires the session service onto the shared Redis connection.
func NewSessions(users *store.Store) *Sessions {
	return &Sessions{rdb: users.Client(), users: users}
}

func sessionKey(token string) string { return "session:" + token }

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

func newSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(b)
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// Signup registers an account and returns the stored user.
func (s *Sessions) Signup(ctx context.Context, email, name, password string, role types.Role) (*types.User, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("account already exists for %s", email)
	}

	salt := newSalt()
	u := &types.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		Salt:      salt,
		Hash:      hashPassword(password, salt),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.PutUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	return u, nil
}

// Login checks credentials and issues a session token.
func (s *Sessions) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	want := hashPassword(password, u.Salt)
	if subtle.ConstantTimeCompare([]byte(want), []byte(u.Hash)) != 1 {
		return "", nil, ErrInvalidCredentials
	}

	token := newToken()
	ident := Identity{UserID: u.ID, Role: u.Role}
	data, err := json.Marshal(ident)
	if err != nil {
		return "", nil, err
	}
	if err := s.rdb.Set(ctx, sessionKey(token), data, config.SessionTTL).Err(); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}
	return token, u, nil
}

// Verify resolves a token to the identity it was issued for, or nil when the
// token is unknown or expired.
func (s *Sessions) Verify(ctx context.Context, token string) *Identity {
	if token == "" {
		return nil
	}
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		return nil
	}
	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		return nil
	}
	return &ident
}

// Logout revokes a session token.
func (s *Sessions) Logout(ctx context.Context, token string) {
	s.rdb.Del(ctx, sessionKey(token))
}

// CanEdit reports whether the identity may use authoring endpoints.
func (i *Identity) CanEdit() bool {
	return i != nil && types.CanEdit(i.Role)
}
