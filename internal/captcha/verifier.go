// Package captcha verifies client captcha tokens against the provider's
// siteverify endpoint. The secret stays on the server.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/config"
)

var ErrMissingToken = errors.New("captcha token is required")

type Verifier struct {
	verifyURL string
	secret    string
	http      *http.Client
}

func NewVerifier(cfg config.CaptchaConfig) *Verifier {
	return NewVerifierWithHTTPClient(cfg.VerifyURL, cfg.Secret, &http.Client{Timeout: cfg.Timeout})
}

func NewVerifierWithHTTPClient(verifyURL, secret string, hc *http.Client) *Verifier {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Verifier{
		verifyURL: verifyURL,
		secret:    secret,
		http:      hc,
	}
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns the provider's verdict for token. Transport failures and
// unexpected provider responses are returned as errors.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha provider returned %d", resp.StatusCode)
	}

	var out siteVerifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		return false, fmt.Errorf("decode captcha response: %w", err)
	}
	return out.Success, nil
}
