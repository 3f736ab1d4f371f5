package session

import (
	"context"
	"time"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
)

// Session is the decoded view of a session token and its server-side record.
type Session struct {
	ID          string
	UserID      string
	Email       string
	Name        string
	Role        models.UserRole
	AccessToken string
	ExpiresAt   time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

func FromRecord(rec models.Session) Session {
	return Session{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Email:       rec.Email,
		Name:        rec.DisplayName,
		Role:        rec.Role,
		AccessToken: rec.AccessToken,
		ExpiresAt:   rec.ExpiresAt,
	}
}

type ctxKey struct{}

func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
