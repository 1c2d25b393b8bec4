package http

import (
	"net/http"
	"time"

	"portfolio/internal/service/impl"
)

const sessionCookie = "jwt"

type cookieJar struct {
	production bool
	days       int
}

func (c cookieJar) base(value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if c.production {
		ck.Secure = true
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

func (c cookieJar) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.base(token, time.Now().Add(time.Duration(c.days)*24*time.Hour)))
}

// clear overwrites the session cookie with an expired placeholder.
func (c cookieJar) clear(w http.ResponseWriter) {
	http.SetCookie(w, c.base(impl.LoggedOutToken, time.Unix(0, 0)))
}

func sessionToken(r *http.Request) string {
	ck, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return ck.Value
}
