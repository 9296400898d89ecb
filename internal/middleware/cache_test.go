package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/config"
)

// cacheCtx builds a context the way Echo hands one to middleware: the
// concrete request URL plus the matched route pattern.
func cacheCtx(target, route string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(route)
	return c
}

// Two requests that match the same parameterized route must never share
// a cache entry; one event's page served under another's slug is a
// data-serving bug, not a stale read.
func TestCacheKeySeparatesRequestsOnSameRoute(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, cacheCtx("/v1/events/spring-show", "/v1/events/:slug"))
	b := cacheKeyFrom(cfg, cacheCtx("/v1/events/summer-games", "/v1/events/:slug"))
	if a == b {
		t.Fatalf("distinct event pages share cache key %s", a)
	}

	// Same for tasks addressed by id within a family.
	a = cacheKeyFrom(cfg, cacheCtx("/v1/tasks/task-a?family=1", "/v1/tasks/:id"))
	b = cacheKeyFrom(cfg, cacheCtx("/v1/tasks/task-b?family=1", "/v1/tasks/:id"))
	if a == b {
		t.Fatalf("distinct tasks share cache key %s", a)
	}
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, cacheCtx("/v1/events/spring-show", "/v1/events/:slug"))
	b := cacheKeyFrom(cfg, cacheCtx("/v1/events/spring-show", "/v1/events/:slug"))
	if a != b {
		t.Fatalf("same request hashed to %s and %s", a, b)
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	withQ := cacheCtx("/v1/tasks/task-a?family=1", "/v1/tasks/:id")
	otherQ := cacheCtx("/v1/tasks/task-a?family=2", "/v1/tasks/:id")

	// The default strategy keys on the query, so the same task looked up
	// in different families caches separately.
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	if cacheKeyFrom(cfg, withQ) == cacheKeyFrom(cfg, otherQ) {
		t.Fatal("route_query ignored the query string")
	}

	// The bare strategy deliberately does not.
	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, withQ) != cacheKeyFrom(cfg, otherQ) {
		t.Fatal("route strategy keyed on the query string")
	}
}
