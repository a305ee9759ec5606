package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/overtuned/authgate/token"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func newVaultStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, rdb := newTestRedis(t)

	codec, err := token.NewCodec(token.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    time.Hour,
		Issuer: "authgate",
	})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	store, err := NewStore(codec, Config{Secure: true}, NewRedisKeeper(rdb, "ag"), nil)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, mr
}

func TestRedisKeeperSaveLookup(t *testing.T) {
	_, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if err := k.Save(context.Background(), "id1", "signed-credential", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	signed, err := k.Lookup(context.Background(), "id1")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if signed != "signed-credential" {
		t.Fatalf("unexpected value %q", signed)
	}
}

func TestRedisKeeperLookupMissing(t *testing.T) {
	_, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if _, err := k.Lookup(context.Background(), "absent"); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected ErrNotKept, got %v", err)
	}
}

func TestRedisKeeperEntryExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if err := k.Save(context.Background(), "id1", "signed", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := k.Lookup(context.Background(), "id1"); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected ErrNotKept after expiry, got %v", err)
	}
}

func TestRedisKeeperTouchExtendsWindow(t *testing.T) {
	mr, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if err := k.Save(context.Background(), "id1", "signed", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	mr.FastForward(45 * time.Second)

	if err := k.Touch(context.Background(), "id1", time.Minute); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	mr.FastForward(45 * time.Second)

	if _, err := k.Lookup(context.Background(), "id1"); err != nil {
		t.Fatalf("expected entry alive after touch, got %v", err)
	}
}

func TestRedisKeeperTouchMissing(t *testing.T) {
	_, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if err := k.Touch(context.Background(), "absent", time.Minute); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected ErrNotKept, got %v", err)
	}
}

func TestRedisKeeperDrop(t *testing.T) {
	_, rdb := newTestRedis(t)
	k := NewRedisKeeper(rdb, "ag")

	if err := k.Save(context.Background(), "id1", "signed", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := k.Drop(context.Background(), "id1"); err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if _, err := k.Lookup(context.Background(), "id1"); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected ErrNotKept after drop, got %v", err)
	}
}

func TestVaultStoreCookieCarriesOnlyIdentifier(t *testing.T) {
	store, _ := newVaultStore(t)
	jar := newMemoryJar()

	if err := store.Create(context.Background(), jar, "tok123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c := jar.lastWrite(t)
	if len(c.Value) != 22 || strings.Contains(c.Value, ".") {
		t.Fatalf("vault cookie must carry a compact id, got %q", c.Value)
	}
}

func TestVaultStoreRoundTrip(t *testing.T) {
	store, _ := newVaultStore(t)
	jar := newMemoryJar()

	if err := store.Create(context.Background(), jar, "tok123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	cred, err := store.Read(context.Background(), jar)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if cred.AuthToken != "tok123" {
		t.Fatalf("unexpected auth token %q", cred.AuthToken)
	}
}

func TestVaultStoreExpiredEntryReadsAnonymous(t *testing.T) {
	store, mr := newVaultStore(t)
	jar := newMemoryJar()

	if err := store.Create(context.Background(), jar, "tok123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	mr.FastForward(2 * time.Hour)

	if _, err := store.Read(context.Background(), jar); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected ErrNotKept, got %v", err)
	}
}

// Malformed vault ids are rejected before any Redis call.
func TestVaultStoreRejectsMalformedCookie(t *testing.T) {
	store, _ := newVaultStore(t)
	jar := newMemoryJar()

	jar.Write(&http.Cookie{Name: "session", Value: "!!not-base64!!"})

	if _, err := store.Read(context.Background(), jar); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("expected token.ErrInvalid for malformed vault id, got %v", err)
	}
}

func TestVaultStoreRefreshSlidesVaultWindow(t *testing.T) {
	store, mr := newVaultStore(t)
	jar := newMemoryJar()

	if err := store.Create(context.Background(), jar, "tok123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mr.FastForward(45 * time.Minute)
	if err := store.Refresh(context.Background(), jar); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// Past the original window but inside the refreshed one.
	mr.FastForward(45 * time.Minute)
	if _, err := store.Read(context.Background(), jar); err != nil {
		t.Fatalf("expected refreshed entry alive, got %v", err)
	}
}

func TestVaultStoreDestroyDropsEntry(t *testing.T) {
	store, _ := newVaultStore(t)
	jar := newMemoryJar()
	revoker := &fakeRevoker{}

	if err := store.Create(context.Background(), jar, "tok123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	id := jar.lastWrite(t).Value

	if err := store.Destroy(context.Background(), jar, revoker); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if len(revoker.calls) != 1 || revoker.calls[0] != "tok123" {
		t.Fatalf("expected one revoke of tok123, got %v", revoker.calls)
	}

	if _, err := store.keeper.Lookup(context.Background(), id); !errors.Is(err, ErrNotKept) {
		t.Fatalf("expected vault entry dropped, got %v", err)
	}
	if _, ok := jar.Read("session"); ok {
		t.Fatal("expected cookie cleared")
	}
}
