package auth

import (
	"os"
	"strings"
	"sync"
	"time"

	"console/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token at call time. Pages never read
// ambient storage directly; they go through an injected Context so tests
// can run without a real token store.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken returns a fixed token, mainly for tests and one-shot CLI runs.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	return string(s), nil
}

// EnvToken reads the token from an environment variable on every call,
// so a refreshed login is picked up without restarting.
type EnvToken string

func (e EnvToken) Token() (string, error) {
	return strings.TrimSpace(os.Getenv(string(e))), nil
}

// FileToken reads the token from a file on every call.
type FileToken string

func (f FileToken) Token() (string, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Context bundles the token source with the unauthenticated hook. The
// hook is the client-side analog of redirecting to the login page; it
// fires at most once per Context until Reset is called.
type Context struct {
	Source            TokenSource
	OnUnauthenticated func()

	mu    sync.Mutex
	fired bool
}

func NewContext(src TokenSource, onUnauthenticated func()) *Context {
	return &Context{Source: src, OnUnauthenticated: onUnauthenticated}
}

// BearerToken returns the token to send, or an UnauthenticatedError when
// no usable token exists. An expired JWT is rejected locally before any
// request is issued.
func (c *Context) BearerToken() (string, error) {
	if c == nil || c.Source == nil {
		return "", domain.UnauthenticatedError{Reason: "no token source"}
	}
	tok, err := c.Source.Token()
	if err != nil {
		c.NotifyUnauthenticated()
		return "", domain.UnauthenticatedError{Reason: "token unavailable", Err: err}
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		c.NotifyUnauthenticated()
		return "", domain.UnauthenticatedError{Reason: "token kosong"}
	}
	if expired, ok := jwtExpired(tok); ok && expired {
		c.NotifyUnauthenticated()
		return "", domain.UnauthenticatedError{Reason: "token kedaluwarsa"}
	}
	return tok, nil
}

// NotifyUnauthenticated fires the hook once. The API client calls this
// when the server answers 401/403.
func (c *Context) NotifyUnauthenticated() {
	if c == nil {
		return
	}
	c.mu.Lock()
	fired := c.fired
	c.fired = true
	c.mu.Unlock()
	if !fired && c.OnUnauthenticated != nil {
		c.OnUnauthenticated()
	}
}

// Reset re-arms the hook, e.g. after a fresh login.
func (c *Context) Reset() {
	c.mu.Lock()
	c.fired = false
	c.mu.Unlock()
}

// jwtExpired inspects the exp claim without verifying the signature.
// Verification is the server's job; we only want to skip a round trip
// that is guaranteed to 401. Opaque (non-JWT) tokens pass through.
func jwtExpired(tok string) (expired, isJWT bool) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return false, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, true
	}
	return exp.Before(time.Now()), true
}
