package middleware

import (
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/meeting-room-reservation/internal/config"
)

func keyFor(cfg config.CacheConfig, method, target, token string) string {
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    // The route path has no query component; echo sets it at routing time.
    c.SetPath(strings.SplitN(target, "?", 2)[0])
    return cacheKeyFrom(cfg, c)
}

func TestCacheKeySeparatesUsers(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

    // Two callers with different credentials on the same per-user route
    // must never share a cache entry, even under the default strategy.
    alice := keyFor(cfg, "GET", "/v1/my-reservations", "token-alice")
    bob := keyFor(cfg, "GET", "/v1/my-reservations", "token-bob")
    if alice == bob {
        t.Fatalf("authenticated callers share cache key %q", alice)
    }

    // The same credential keeps a stable key so it still gets cache hits.
    again := keyFor(cfg, "GET", "/v1/my-reservations", "token-alice")
    if alice != again {
        t.Fatalf("same caller got keys %q and %q", alice, again)
    }

    // An authenticated and an anonymous request to one route differ too.
    anon := keyFor(cfg, "GET", "/v1/rooms", "")
    authed := keyFor(cfg, "GET", "/v1/rooms", "token-alice")
    if anon == authed {
        t.Fatalf("anonymous and authenticated requests share cache key %q", anon)
    }
}

func TestCacheKeyStrategies(t *testing.T) {
    base := config.CacheConfig{Prefix: "cache"}

    // Anonymous keys stay purely request-shaped: same route and query
    // always map to the same key regardless of who asks.
    cfg := base
    cfg.KeyStrategy = "route_query"
    if a, b := keyFor(cfg, "GET", "/v1/rooms?x=1", ""), keyFor(cfg, "GET", "/v1/rooms?x=1", ""); a != b {
        t.Fatalf("identical anonymous requests got keys %q and %q", a, b)
    }
    if a, b := keyFor(cfg, "GET", "/v1/rooms?x=1", ""), keyFor(cfg, "GET", "/v1/rooms?x=2", ""); a == b {
        t.Fatal("route_query ignored the query string")
    }

    // method_route folds the method in but not the query.
    cfg.KeyStrategy = "method_route"
    if a, b := keyFor(cfg, "GET", "/v1/rooms?x=1", ""), keyFor(cfg, "GET", "/v1/rooms?x=2", ""); a != b {
        t.Fatal("method_route should not depend on the query string")
    }
}
