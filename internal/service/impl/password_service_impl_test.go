package impl

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var cheapArgon = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestPasswordHashAndVerify(t *testing.T) {
	ps := NewPasswordServiceWithParams(cheapArgon)

	encoded, err := ps.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}

	rehash, ok := ps.Verify("correct horse", encoded)
	if !ok || rehash {
		t.Fatalf("verify = (%v, %v), want (false, true)", rehash, ok)
	}
	if _, ok := ps.Verify("wrong horse", encoded); ok {
		t.Fatal("wrong password accepted")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	ps := NewPasswordServiceWithParams(cheapArgon)
	a, _ := ps.Hash("same")
	b, _ := ps.Hash("same")
	if a == b {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestPasswordRehashWhenPolicyChanges(t *testing.T) {
	old := NewPasswordServiceWithParams(cheapArgon)
	encoded, _ := old.Hash("pw-123456")

	stronger := cheapArgon
	stronger.Time = 2
	rehash, ok := NewPasswordServiceWithParams(stronger).Verify("pw-123456", encoded)
	if !ok || !rehash {
		t.Fatalf("verify = (%v, %v), want (true, true)", rehash, ok)
	}
}

func TestPasswordVerifiesLegacyBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	ps := NewPasswordServiceWithParams(cheapArgon)

	rehash, ok := ps.Verify("legacy-pass", string(legacy))
	if !ok || !rehash {
		t.Fatalf("verify legacy = (%v, %v), want (true, true)", rehash, ok)
	}
	if _, ok := ps.Verify("nope", string(legacy)); ok {
		t.Fatal("wrong legacy password accepted")
	}
}

func TestPasswordRejectsMalformed(t *testing.T) {
	ps := NewPasswordServiceWithParams(cheapArgon)
	for _, enc := range []string{"", "plain", "$argon2id$v=19$m=1,t=1$x$y", "$argon2i$v=19$m=1,t=1,p=1$AA$AA"} {
		if _, ok := ps.Verify("x", enc); ok {
			t.Errorf("malformed hash %q accepted", enc)
		}
	}
	if _, err := ps.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}
