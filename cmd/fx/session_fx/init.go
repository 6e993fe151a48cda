package session_fx

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	"voyago/internal/services"
	mem "voyago/pkg/memcache"
)

var Module = fx.Provide(
	provideSessionStore,
	services.NewSessionService)

func provideSessionStore() mem.SessionStore {
	ttl := 2 * time.Hour
	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		}
	}
	return mem.NewPlannerSessions(ttl)
}
