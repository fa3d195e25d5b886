// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-polls/csrf"
)

type csrfKey struct{}

// CSRF issues the csrftoken cookie and rejects unsafe requests whose
// form field or X-CSRFToken header does not match it
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(csrf.CookieName); err == nil && csrf.WellFormed(c.Value) {
			token = c.Value
		}
		cookieToken := token

		if token == "" {
			var err error
			token, err = csrf.GenerateToken()
			if err != nil {
				slog.Error("failed to generate CSRF token", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     csrf.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				SameSite: http.SameSiteLaxMode,
			})
		}

		if !isSafeMethod(r.Method) {
			submitted := r.Header.Get(csrf.HeaderName)
			if submitted == "" {
				submitted = r.PostFormValue(csrf.FormField)
			}
			if err := csrf.ValidateToken(cookieToken, submitted); err != nil {
				slog.Warn("CSRF verification failed", "path", r.URL.Path, "remote", GetClientIP(r), "error", err)
				if WantsJSON(r) {
					ErrorResponse(w, http.StatusForbidden, "CSRF verification failed")
					return
				}
				http.Error(w, "CSRF verification failed", http.StatusForbidden)
				return
			}
		}

		ctx := context.WithValue(r.Context(), csrfKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFToken returns the token CSRF attached to the request, if any
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfKey{}).(string)
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
