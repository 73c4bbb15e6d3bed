package auth

import (
	"testing"

	"lessoncast/types"
)

func TestHashPasswordDeterministic(t *testing.T) {
	a := hashPassword("hunter2", "salt-a")
	b := hashPassword("hunter2", "salt-a")
	if a != b {
		t.Fatalf("hash not deterministic: %s vs %s", a, b)
	}
	if a == hashPassword("hunter2", "salt-b") {
		t.Fatalf("different salts produced the same hash")
	}
	if a == hashPassword("hunter3", "salt-a") {
		t.Fatalf("different passwords produced the same hash")
	}
}

func TestTokenAndSaltUnique(t *testing.T) {
	if newToken() == newToken() {
		t.Fatalf("tokens collided")
	}
	if newSalt() == newSalt() {
		t.Fatalf("salts collided")
	}
	if len(newToken()) != 64 {
		t.Fatalf("token length = %d; want 64 hex chars", len(newToken()))
	}
}

func TestIdentityCanEdit(t *testing.T) {
	cases := []struct {
		role types.Role
		want bool
	}{
		{types.RoleAdmin, true},
		{types.RoleEditor, true},
		{types.RoleStudent, false},
	}
	for _, c := range cases {
		ident := &Identity{UserID: "u", Role: c.role}
		if got := ident.CanEdit(); got != c.want {
			t.Fatalf("CanEdit(%s) = %v; want %v", c.role, got, c.want)
		}
	}
	var nilIdent *Identity
	if nilIdent.CanEdit() {
		t.Fatalf("nil identity can edit")
	}
}
