package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryStore_EmptyReturnsNoCredential(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Token(context.Background())
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Expected ErrNoCredential, got %v", err)
	}
}

func TestMemoryStore_SetAndClear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.SetToken(ctx, "abc.def.ghi"); err != nil {
		t.Fatalf("Failed to set token: %v", err)
	}

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("Expected token 'abc.def.ghi', got '%s'", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear token: %v", err)
	}

	_, err = store.Token(ctx)
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Expected ErrNoCredential after clear, got %v", err)
	}
}

func TestDefaultRedisConfig(t *testing.T) {
	config := DefaultRedisConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Expected Addr to be localhost:6379, got %s", config.Addr)
	}

	if config.Key != defaultTokenKey {
		t.Errorf("Expected Key to be %s, got %s", defaultTokenKey, config.Key)
	}

	if config.DialTimeout != 5*time.Second {
		t.Errorf("Expected DialTimeout to be 5s, got %v", config.DialTimeout)
	}
}

func setupTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	config := DefaultRedisConfig()
	config.Addr = mr.Addr()

	return NewRedisStore(config), mr
}

func TestRedisStore_EmptyReturnsNoCredential(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	defer mr.Close()

	_, err := store.Token(context.Background())
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Expected ErrNoCredential, got %v", err)
	}
}

func TestRedisStore_SetGetClear(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	if err := store.SetToken(ctx, "header.payload.sig"); err != nil {
		t.Fatalf("Failed to set token: %v", err)
	}

	token, err := store.Token(ctx)
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "header.payload.sig" {
		t.Errorf("Expected token 'header.payload.sig', got '%s'", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Failed to clear token: %v", err)
	}

	_, err = store.Token(ctx)
	if !errors.Is(err, ErrNoCredential) {
		t.Errorf("Expected ErrNoCredential after clear, got %v", err)
	}
}

func TestRedisStore_ReadFailureIsNotNoCredential(t *testing.T) {
	store, mr := setupTestRedisStore(t)
	mr.Close()

	_, err := store.Token(context.Background())
	if err == nil {
		t.Fatal("Expected error after redis shutdown")
	}
	if errors.Is(err, ErrNoCredential) {
		t.Error("A store failure must not be reported as a missing credential")
	}
}
