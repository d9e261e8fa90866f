package identity_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"testing"

	"task-manager/client/internal/identity"
	"task-manager/client/internal/session"
)

// makeToken builds an unsigned three-segment token around the given payload.
// RawURLEncoding leaves off the padding the resolver has to repair.
func makeToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".signature"
}

func storeWith(t *testing.T, token string) session.Store {
	t.Helper()
	store := session.NewMemoryStore()
	if err := store.SetToken(context.Background(), token); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
	return store
}

func TestUserID_ValidClaim(t *testing.T) {
	resolver := identity.NewResolver(storeWith(t, makeToken(`{"user_id": 42, "exp": 1999999999}`)))

	id, err := resolver.UserID(context.Background())
	if err != nil {
		t.Fatalf("Failed to resolve identity: %v", err)
	}
	if id != 42 {
		t.Errorf("Expected user id 42, got %d", id)
	}
}

func TestUserID_ArbitraryValues(t *testing.T) {
	for _, want := range []int64{1, 7, 1001, 987654321} {
		token := makeToken(`{"user_id": ` + strconv.FormatInt(want, 10) + `}`)
		id, err := identity.UserIDFromToken(token)
		if err != nil {
			t.Fatalf("Failed to resolve user %d: %v", want, err)
		}
		if id != want {
			t.Errorf("Expected user id %d, got %d", want, id)
		}
	}
}

func TestUserID_NoCredential(t *testing.T) {
	resolver := identity.NewResolver(session.NewMemoryStore())

	_, err := resolver.UserID(context.Background())

	var identityErr *identity.Error
	if !errors.As(err, &identityErr) {
		t.Fatalf("Expected identity error, got %v", err)
	}
	if identityErr.Kind != identity.KindNoCredential {
		t.Errorf("Expected kind no_credential, got %s", identityErr.Kind)
	}
}

func TestUserID_MalformedCredentials(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"single segment", "nonsense"},
		{"two segments", "header.payload"},
		{"four segments", "a.b.c.d"},
		{"undecodable payload", "aGVhZGVy.!!!not-base64!!!.c2ln"},
		{"payload is not a claim set", makeToken(`["not", "an", "object"]`)},
		{"non-numeric user_id", makeToken(`{"user_id": "forty-two"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.UserIDFromToken(tt.token)

			var identityErr *identity.Error
			if !errors.As(err, &identityErr) {
				t.Fatalf("Expected identity error, got %v", err)
			}
			if identityErr.Kind != identity.KindMalformed {
				t.Errorf("Expected kind malformed_credential, got %s", identityErr.Kind)
			}
		})
	}
}

func TestUserID_MissingClaim(t *testing.T) {
	_, err := identity.UserIDFromToken(makeToken(`{"sub": "someone", "exp": 1999999999}`))

	var identityErr *identity.Error
	if !errors.As(err, &identityErr) {
		t.Fatalf("Expected identity error, got %v", err)
	}
	if identityErr.Kind != identity.KindMissingClaim {
		t.Errorf("Expected kind missing_claim, got %s", identityErr.Kind)
	}
}
