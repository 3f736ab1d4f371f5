package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

// Lookup resolves a session id to its stored record.
type Lookup interface {
	GetByID(ctx context.Context, id string) (models.Session, error)
}

// Decoder turns the session cookie (or a bearer header) into a Session. It
// never reports a partial result: any parse, lookup or consistency failure
// yields ok == false.
type Decoder struct {
	secret     string
	cookieName string
	lookup     Lookup
	log        zerolog.Logger
	now        func() time.Time
}

func NewDecoder(secret, cookieName string, lookup Lookup, log zerolog.Logger) *Decoder {
	return &Decoder{
		secret:     secret,
		cookieName: cookieName,
		lookup:     lookup,
		log:        log,
		now:        time.Now,
	}
}

func (d *Decoder) SessionFromRequest(r *http.Request) (Session, bool) {
	raw := d.rawToken(r)
	if raw == "" {
		return Session{}, false
	}

	claims, err := Parse(raw, d.secret)
	if err != nil {
		d.log.Debug().Err(err).Str("path", r.URL.Path).Msg("session token rejected")
		return Session{}, false
	}

	if d.lookup == nil {
		return Session{}, false
	}
	rec, err := d.lookup.GetByID(r.Context(), claims.SessionID)
	if err != nil {
		d.log.Debug().Err(err).Str("session_id", claims.SessionID).Msg("session lookup failed")
		return Session{}, false
	}

	if rec.UserID != claims.UserID {
		d.log.Warn().Str("session_id", claims.SessionID).Msg("session subject mismatch")
		return Session{}, false
	}

	sess := FromRecord(rec)
	if sess.Expired(d.now()) {
		return Session{}, false
	}
	return sess, true
}

func (d *Decoder) rawToken(r *http.Request) string {
	if cookie, err := r.Cookie(d.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
