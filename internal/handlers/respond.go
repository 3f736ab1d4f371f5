package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/middleware"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

const deviceCookie = "hotelhub_device"

type viewer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func viewerOf(c *gin.Context) *viewer {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return nil
	}
	return &viewer{
		ID:    sess.UserID,
		Name:  sess.Name,
		Email: sess.Email,
		Role:  string(sess.Role),
	}
}

// client returns the backend client bound to the caller's credential.
func (h HandlerSet) client(c *gin.Context) *apiclient.Client {
	sess, _ := middleware.CurrentSession(c)
	return h.api.WithToken(sess.AccessToken)
}

func statusFor(err error, ok int) int {
	if err == nil {
		return ok
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return http.StatusNotFound
	}
	switch store.Classify(err) {
	case store.KindValidation:
		return http.StatusUnprocessableEntity
	case store.KindNetwork:
		return http.StatusBadGateway
	case store.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeStore renders a store-backed page. A backend auth failure ends the
// session instead.
func writeStore[T any, D any](h HandlerSet, c *gin.Context, page string, ok int, s *store.Store[T, D], err error, extra gin.H) {
	if err != nil && store.Classify(err) == store.KindUnauthorized {
		h.sessionExpired(c)
		return
	}

	body := gin.H{
		"page":   page,
		"viewer": viewerOf(c),
		"fields": s.Schema().Fields(),
		"state":  s.Snapshot(),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusFor(err, ok), body)
}

// backendError answers a failed backend call made outside a store.
func (h HandlerSet) backendError(c *gin.Context, err error) {
	if store.Classify(err) == store.KindUnauthorized {
		h.sessionExpired(c)
		return
	}
	c.JSON(statusFor(err, http.StatusInternalServerError), gin.H{
		"error": store.WrapError(err),
	})
}

// sessionExpired drops the local session and sends the browser to login.
func (h HandlerSet) sessionExpired(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok && h.auth != nil {
		if err := h.auth.Logout(c.Request.Context(), sess.ID); err != nil {
			h.log.Warn().Err(err).Str("session_id", sess.ID).Msg("drop expired session failed")
		}
	}
	h.clearSessionCookie(c)

	q := url.Values{}
	q.Set("callbackUrl", c.Request.URL.Path)
	c.Redirect(redirectStatus(c), h.loginPath()+"?"+q.Encode())
	c.Abort()
}

func redirectStatus(c *gin.Context) int {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		return http.StatusTemporaryRedirect
	}
	return http.StatusSeeOther
}

func (h HandlerSet) loginPath() string {
	if h.cfg.Gate.LoginPath != "" {
		return h.cfg.Gate.LoginPath
	}
	return "/auth/login"
}

func (h HandlerSet) dashboardPath() string {
	if h.cfg.Gate.DashboardPath != "" {
		return h.cfg.Gate.DashboardPath
	}
	return "/dashboard"
}

func (h HandlerSet) cookieName() string {
	if h.cfg.Security.CookieName != "" {
		return h.cfg.Security.CookieName
	}
	return "hotelhub_session"
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName(), token, maxAge, "/", h.cfg.Security.CookieDomain, h.cfg.Security.CookieSecure, true)
}

func (h HandlerSet) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName(), "", -1, "/", h.cfg.Security.CookieDomain, h.cfg.Security.CookieSecure, true)
}

// deviceID returns the browser's device id, issuing one on first use.
func (h HandlerSet) deviceID(c *gin.Context, issue func() string) string {
	if v, err := c.Cookie(deviceCookie); err == nil && v != "" && len(v) <= 64 {
		return v
	}
	id := issue()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(deviceCookie, id, int((365 * 24 * time.Hour).Seconds()), "/", h.cfg.Security.CookieDomain, h.cfg.Security.CookieSecure, true)
	return id
}

// safeCallback accepts only same-origin absolute paths and never points back
// at the login page.
func (h HandlerSet) safeCallback(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return h.dashboardPath()
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return h.dashboardPath()
	}
	if u.Path == h.loginPath() || strings.HasPrefix(u.Path, h.loginPath()+"/") {
		return h.dashboardPath()
	}
	return u.RequestURI()
}

// bindFields copies request fields into the store draft. JSON bodies and
// form posts are accepted; imageField names the multipart file input, if any.
func bindFields[T any, D any](c *gin.Context, s *store.Store[T, D], imageField store.Field) error {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		if err := setValues(s, form.Value); err != nil {
			return err
		}
		if imageField == "" {
			return nil
		}
		files := form.File[string(imageField)]
		if len(files) == 0 {
			return nil
		}
		img, err := readImage(files[0])
		if err != nil {
			return err
		}
		return s.SetField(imageField, img)
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
		return setValues(s, c.Request.PostForm)
	default:
		var body map[string]any
		if err := json.NewDecoder(io.LimitReader(c.Request.Body, 1<<20)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode body: %w", err)
		}
		for key, value := range body {
			if err := s.SetField(store.Field(key), value); err != nil {
				return err
			}
		}
		return nil
	}
}

func setValues[T any, D any](s *store.Store[T, D], values map[string][]string) error {
	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		if err := s.SetField(store.Field(key), vs[0]); err != nil {
			return err
		}
	}
	return nil
}

func readImage(fh *multipart.FileHeader) (*store.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// One byte past the limit is enough for the size rule to reject it.
	data, err := io.ReadAll(io.LimitReader(f, store.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &store.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
