package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"softveda-site/internal/domain"
	"softveda-site/internal/session"
)

const sessionContextKey = "session"

// loadSession resolves the cookie into a stored session. Any failure leaves
// the request anonymous.
func (h *Handler) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(h.cookie.Name)
		if err != nil || value == "" {
			c.Next()
			return
		}

		id, err := h.cookies.Decode(value)
		if err != nil {
			h.clearSessionCookie(c)
			c.Next()
			return
		}

		sess, err := h.sessions.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(sessionContextKey, sess)
		case errors.Is(err, session.ErrNotFound):
			h.clearSessionCookie(c)
		default:
			h.logger.WithError(err).Warn("load session")
		}
		c.Next()
	}
}

func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c).IsUser() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, loginPage)
		c.Abort()
	}
}

func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c).IsAdmin() {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, loginPage)
		c.Abort()
	}
}

func sessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

func identityFrom(c *gin.Context) domain.Identity {
	if sess := sessionFrom(c); sess != nil {
		return sess.Identity
	}
	return domain.Anonymous()
}

func (h *Handler) setSessionCookie(c *gin.Context, sess *session.Session) error {
	value, err := h.cookies.Encode(sess)
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
