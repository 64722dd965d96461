package utils

import (
	"net/http"
	"time"
)

// SetAuthCookies writes both token cookies with the shared attributes and
// per-token max age.
func SetAuthCookies(w http.ResponseWriter, cfg CookieConfig, pair *TokenPair) {
	now := time.Now()
	http.SetCookie(w, authCookie(cfg, cfg.AccessName, pair.Access, int(pair.AccessExpiresAt.Sub(now).Seconds())))
	http.SetCookie(w, authCookie(cfg, cfg.RefreshName, pair.Refresh, int(pair.RefreshExpiresAt.Sub(now).Seconds())))
}

func ClearAuthCookies(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, authCookie(cfg, cfg.AccessName, "", -1))
	http.SetCookie(w, authCookie(cfg, cfg.RefreshName, "", -1))
}

// CookieValue returns the named cookie's value or "".
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func authCookie(cfg CookieConfig, name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: cfg.HTTPOnly,
		SameSite: cfg.SameSite,
	}
}
