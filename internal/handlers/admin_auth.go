package handlers

import (
	"crypto/subtle"
	"net/http"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/services"
)

const (
	adminCookieName = "admin_session"
	adminSessionTTL = 24 * time.Hour
)

// AdminAuth is the shared-password admin login. Sessions live in memory and
// are lost on restart.
type AdminAuth struct {
	password string

	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewAdminAuth(password string) *AdminAuth {
	return &AdminAuth{password: password, sessions: map[string]time.Time{}, now: time.Now}
}

// RequireAdmin is middleware: blocks access unless logged in.
func (a *AdminAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(adminCookieName)
		if err != nil || !a.valid(c.Value) {
			writeFail(w, http.StatusUnauthorized, codeUnauthorized, "admin login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *AdminAuth) valid(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	exp, ok := a.sessions[token]
	if !ok {
		return false
	}
	if a.now().After(exp) {
		delete(a.sessions, token)
		return false
	}
	return true
}

// POST /admin/login
func (a *AdminAuth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFail(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	pw := r.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pw), []byte(a.password)) != 1 {
		zerolog.Ctx(r.Context()).Warn().Str("remote_addr", r.RemoteAddr).Msg("admin login rejected")
		writeFail(w, http.StatusUnauthorized, codeUnauthorized, "invalid password")
		return
	}
	token, err := gonanoid.New(32)
	if err != nil {
		writeFail(w, http.StatusInternalServerError, string(services.CodeInternal), "internal error")
		return
	}
	exp := a.now().Add(adminSessionTTL)
	a.mu.Lock()
	a.sessions[token] = exp
	a.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	w.WriteHeader(http.StatusNoContent)
}

// POST /admin/logout
func (a *AdminAuth) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(adminCookieName); err == nil {
		a.mu.Lock()
		delete(a.sessions, c.Value)
		a.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}
