//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/overtuned/authgate/session"
)

// redisMode describes which Redis backend the compatibility suite is running against.
type redisMode struct {
	name  string
	setup func(t *testing.T) (redis.UniversalClient, func())
}

// redisModes returns the set of Redis backends to test.
// miniredis is always available.
// Real Redis standalone is used when REDIS_ADDR is set (e.g. "127.0.0.1:6379").
func redisModes(t *testing.T) []redisMode {
	t.Helper()
	modes := []redisMode{
		{
			name: "miniredis",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				mr, err := miniredis.Run()
				if err != nil {
					t.Fatalf("miniredis: %v", err)
				}
				rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
				return rdb, func() { _ = rdb.Close(); mr.Close() }
			},
		},
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		modes = append(modes, redisMode{
			name: "standalone:" + addr,
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewClient(&redis.Options{Addr: addr})
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis at %s: %v", addr, err)
				}
				// Flush the test DB to avoid state leaking between runs.
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	// Cluster mode: when REDIS_CLUSTER_ADDRS is set (comma-separated).
	if addrs := os.Getenv("REDIS_CLUSTER_ADDRS"); addrs != "" {
		modes = append(modes, redisMode{
			name: "cluster",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewClusterClient(&redis.ClusterOptions{Addrs: splitAddrs(addrs)})
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis cluster: %v", err)
				}
				return rdb, func() { _ = rdb.Close() }
			},
		})
	}

	// Sentinel mode: when REDIS_SENTINEL_ADDRS and REDIS_SENTINEL_MASTER are set.
	if addrs := os.Getenv("REDIS_SENTINEL_ADDRS"); addrs != "" {
		master := os.Getenv("REDIS_SENTINEL_MASTER")
		if master == "" {
			master = "mymaster"
		}
		modes = append(modes, redisMode{
			name: "sentinel",
			setup: func(t *testing.T) (redis.UniversalClient, func()) {
				t.Helper()
				rdb := redis.NewFailoverClient(&redis.FailoverOptions{
					MasterName:    master,
					SentinelAddrs: splitAddrs(addrs),
				})
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := rdb.Ping(ctx).Err(); err != nil {
					t.Skipf("cannot connect to Redis sentinel: %v", err)
				}
				rdb.FlushDB(context.Background())
				return rdb, func() { rdb.FlushDB(context.Background()); _ = rdb.Close() }
			},
		})
	}

	return modes
}

func splitAddrs(s string) []string {
	var addrs []string
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// TestVaultCompat_SaveLookupRoundTrip validates the basic vault round trip
// across backends.
func TestVaultCompat_SaveLookupRoundTrip(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			keeper := session.NewRedisKeeper(rdb, "ag")
			ctx := context.Background()

			if err := keeper.Save(ctx, "entry-1", "signed-credential", time.Hour); err != nil {
				t.Fatalf("save: %v", err)
			}

			got, err := keeper.Lookup(ctx, "entry-1")
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if got != "signed-credential" {
				t.Errorf("got %q, want signed-credential", got)
			}

			if _, err := keeper.Lookup(ctx, "entry-unknown"); !errors.Is(err, session.ErrNotKept) {
				t.Errorf("expected ErrNotKept for unknown entry, got %v", err)
			}
		})
	}
}

// TestVaultCompat_DropIsIdempotent validates drop idempotency across backends.
func TestVaultCompat_DropIsIdempotent(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			keeper := session.NewRedisKeeper(rdb, "ag")
			ctx := context.Background()

			if err := keeper.Save(ctx, "entry-drop", "signed-credential", time.Hour); err != nil {
				t.Fatalf("save: %v", err)
			}

			if err := keeper.Drop(ctx, "entry-drop"); err != nil {
				t.Fatalf("first drop: %v", err)
			}
			if err := keeper.Drop(ctx, "entry-drop"); err != nil {
				t.Fatalf("second drop should be idempotent: %v", err)
			}

			if _, err := keeper.Lookup(ctx, "entry-drop"); !errors.Is(err, session.ErrNotKept) {
				t.Errorf("expected ErrNotKept after drop, got %v", err)
			}
		})
	}
}

// TestVaultCompat_TouchOnlyExtendsLiveEntries validates sliding expiry
// semantics across backends: a dropped entry is never resurrected.
func TestVaultCompat_TouchOnlyExtendsLiveEntries(t *testing.T) {
	for _, mode := range redisModes(t) {
		t.Run(mode.name, func(t *testing.T) {
			rdb, cleanup := mode.setup(t)
			defer cleanup()

			keeper := session.NewRedisKeeper(rdb, "ag")
			ctx := context.Background()

			if err := keeper.Save(ctx, "entry-touch", "signed-credential", time.Hour); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := keeper.Touch(ctx, "entry-touch", 2*time.Hour); err != nil {
				t.Fatalf("touch on live entry: %v", err)
			}

			if err := keeper.Drop(ctx, "entry-touch"); err != nil {
				t.Fatalf("drop: %v", err)
			}
			if err := keeper.Touch(ctx, "entry-touch", time.Hour); !errors.Is(err, session.ErrNotKept) {
				t.Errorf("expected ErrNotKept touching dropped entry, got %v", err)
			}
		})
	}
}
