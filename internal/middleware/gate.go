package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/gate"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/metrics"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
)

const sessionKey = "session"

// Gate runs the session gate in front of every route. Redirects are
// temporary; non-GET requests are redirected with 303 so browsers do not
// replay a form body against the redirect target.
func Gate(g *gate.Gate, tokens gate.TokenSource, m *metrics.Metrics, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, sess := g.Evaluate(c.Request, tokens)
		m.ObserveGateDecision(decision.Outcome.String())

		if decision.Redirect() {
			log.Debug().
				Str("path", c.Request.URL.Path).
				Str("outcome", decision.Outcome.String()).
				Msg("gate redirect")

			status := http.StatusTemporaryRedirect
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				status = http.StatusSeeOther
			}
			c.Redirect(status, decision.Location)
			c.Abort()
			return
		}

		if sess != nil {
			c.Set(sessionKey, *sess)
			c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), *sess))
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by Gate.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(session.Session); ok {
			return sess, true
		}
	}
	return session.FromContext(c.Request.Context())
}
