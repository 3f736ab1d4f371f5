package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/ids"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/models"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/repository"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/session"
)

var ErrNoAccessToken = errors.New("backend returned no access token")

type AuthAPI interface {
	Login(ctx context.Context, in apiclient.LoginInput) (apiclient.AuthResult, error)
	Register(ctx context.Context, in apiclient.RegisterInput) (apiclient.AuthResult, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	ListByUser(ctx context.Context, userID string) ([]models.Session, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	DeleteOldestSessions(ctx context.Context, userID string, keepLatest int) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByDevice(ctx context.Context, userID string, deviceID string) (string, error)
}

type SessionEvicter interface {
	Evict(ctx context.Context, ids ...string) error
}

type AuthService struct {
	api      AuthAPI
	sessions SessionStore
	cache    SessionEvicter
	cfg      config.SecurityConfig
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	api AuthAPI,
	sessions SessionStore,
	cache SessionEvicter,
	cfg config.SecurityConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		cache:    cache,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// ClientInfo describes the browser a session is opened for.
type ClientInfo struct {
	DeviceID  string
	IPAddress string
	UserAgent string
}

type AuthResult struct {
	// Token is the signed session cookie value. Empty when the backend
	// accepted a registration but did not sign the user in.
	Token   string
	Session models.Session
	User    models.User
}

func (s *AuthService) Login(ctx context.Context, input apiclient.LoginInput, client ClientInfo) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	res, err := s.api.Login(ctx, input)
	if err != nil {
		return AuthResult{}, err
	}
	if res.AccessToken == "" {
		return AuthResult{}, ErrNoAccessToken
	}
	return s.createSession(ctx, res, client)
}

func (s *AuthService) Register(ctx context.Context, input apiclient.RegisterInput, client ClientInfo) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	res, err := s.api.Register(ctx, input)
	if err != nil {
		return AuthResult{}, err
	}
	if res.AccessToken == "" {
		return AuthResult{User: res.User}, nil
	}
	return s.createSession(ctx, res, client)
}

func (s *AuthService) createSession(ctx context.Context, res apiclient.AuthResult, client ClientInfo) (AuthResult, error) {
	user := res.User
	if user.ID == "" {
		return AuthResult{}, fmt.Errorf("backend returned no user id")
	}
	if user.Role == "" {
		user.Role = models.UserRoleStaff
	}

	deviceID := client.DeviceID
	if deviceID == "" {
		deviceID = ids.New()
	}

	now := s.now()
	rec := models.Session{
		ID:          ids.New(),
		UserID:      user.ID,
		DeviceID:    deviceID,
		Email:       user.Email,
		DisplayName: user.Name,
		Role:        user.Role,
		AccessToken: res.AccessToken,
		IPAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		CreatedAt:   now,
		LastSeenAt:  now,
		ExpiresAt:   now.Add(s.cfg.SessionTTL),
	}

	token, err := session.Mint(s.cfg.SessionSecret, rec, now)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.sessions.Create(ctx, rec); err != nil {
		return AuthResult{}, fmt.Errorf("store session: %w", err)
	}

	if err := s.enforceSessionLimit(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("enforce session limit failed")
	}

	return AuthResult{
		Token:   token,
		Session: rec,
		User:    user,
	}, nil
}

func (s *AuthService) enforceSessionLimit(ctx context.Context, userID string) error {
	if s.cfg.MaxSessions <= 0 {
		return nil
	}
	count, err := s.sessions.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count <= s.cfg.MaxSessions {
		return nil
	}

	removed, err := s.sessions.DeleteOldestSessions(ctx, userID, s.cfg.MaxSessions)
	if err != nil {
		return err
	}
	return s.evict(ctx, removed...)
}

// Logout ends one session. A session that is already gone is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteByID(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}
	return s.evict(ctx, sessionID)
}

func (s *AuthService) Sessions(ctx context.Context, userID string) ([]models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// RevokeDevice ends the user's session on deviceID.
func (s *AuthService) RevokeDevice(ctx context.Context, userID string, deviceID string) error {
	id, err := s.sessions.DeleteByDevice(ctx, userID, deviceID)
	if err != nil {
		return err
	}
	return s.evict(ctx, id)
}

func (s *AuthService) evict(ctx context.Context, sessionIDs ...string) error {
	if s.cache == nil || len(sessionIDs) == 0 {
		return nil
	}
	return s.cache.Evict(ctx, sessionIDs...)
}
