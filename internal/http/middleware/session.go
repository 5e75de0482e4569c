package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/auth"
	"advocatehub/internal/config"
	"advocatehub/internal/model"
)

// UserLocalKey is the Fiber locals key holding the *model.User admitted by SessionGate.
const UserLocalKey = "user"

const loadingPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>Loading…</title></head>
<body><p class="loading">Loading…</p></body>
</html>`

// SessionGate resolves the session cookie and applies an auth.Predicate to it.
type SessionGate struct {
	resolver   auth.Resolver
	cookieName string
	loginPath  string
	timeout    time.Duration
	metrics    *PrometheusMiddleware
}

// NewSessionGate builds a gate. metrics may be nil.
func NewSessionGate(resolver auth.Resolver, cfg config.SessionConfig, metrics *PrometheusMiddleware) *SessionGate {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	return &SessionGate{
		resolver:   resolver,
		cookieName: cfg.CookieName,
		loginPath:  loginPath,
		timeout:    cfg.ResolveTimeout(),
		metrics:    metrics,
	}
}

// LoginPath is where rejected callers are sent.
func (g *SessionGate) LoginPath() string {
	return g.loginPath
}

// Require admits requests whose session satisfies p.
//
// While the session is still loading it answers 202 with a placeholder page and a
// Refresh header, so the browser asks again and the check is re-evaluated. It never
// redirects in that state. A resolved session without a user, or one failing p, gets
// a single 302 to the login path.
func (g *SessionGate) Require(p auth.Predicate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		sess, err := g.resolver.Resolve(ctx, c.Cookies(g.cookieName))
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "session unavailable")
		}

		decision := auth.Decide(sess, p)
		g.metrics.ObserveGate(decision.String())

		switch decision {
		case auth.DecisionPending:
			c.Set("Refresh", "1")
			c.Set(fiber.HeaderCacheControl, "no-store")
			return c.Status(fiber.StatusAccepted).Type("html").SendString(loadingPage)
		case auth.DecisionRedirect:
			return c.Redirect(g.loginPath, fiber.StatusFound)
		default:
			c.Locals(UserLocalKey, sess.User)
			return c.Next()
		}
	}
}

// UserFromCtx returns the user admitted by SessionGate, or nil.
func UserFromCtx(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}
