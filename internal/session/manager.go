// Package session binds an authenticated identity to requests through a
// session cookie. The cookie only carries a random id; identity lives in a Store.
package session

import (
	"net/http"
	"time"

	"foolivery/internal/models"
	"foolivery/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ctxSessionID = "session.id"
	ctxIdentity  = "session.identity"
)

// Options configures the session cookie
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager issues, resolves and destroys sessions
type Manager struct {
	store  Store
	opts   Options
	logger *zap.Logger
}

// NewManager creates a session manager
func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "foolivery_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, logger: util.GetLogger()}
}

// Middleware resolves the session cookie into an identity on the gin context.
// Requests without a valid session continue anonymously.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(m.opts.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		data, err := m.store.Load(c.Request.Context(), id)
		if err != nil {
			m.logger.Error("Failed to load session", zap.Error(err))
		}
		if data != nil {
			c.Set(ctxSessionID, id)
			c.Set(ctxIdentity, data)
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless the request carries a resolved identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Identity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized. Please login to continue.",
			})
			return
		}
		c.Next()
	}
}

// Login starts a fresh session for user, replacing any current one
func (m *Manager) Login(c *gin.Context, user models.PublicUser) error {
	ctx := c.Request.Context()

	if oldID, ok := c.Get(ctxSessionID); ok {
		if err := m.store.Delete(ctx, oldID.(string)); err != nil {
			m.logger.Warn("Failed to drop previous session", zap.Error(err))
		}
	}

	id := uuid.NewString()
	data := &Data{UserID: user.ID, Username: user.Username, CreatedAt: time.Now()}
	if err := m.store.Save(ctx, id, data, m.opts.TTL); err != nil {
		return err
	}

	m.setCookie(c, id, int(m.opts.TTL.Seconds()))
	c.Set(ctxSessionID, id)
	c.Set(ctxIdentity, data)
	return nil
}

// Logout destroys the current session and expires the cookie
func (m *Manager) Logout(c *gin.Context) error {
	if id, ok := c.Get(ctxSessionID); ok {
		if err := m.store.Delete(c.Request.Context(), id.(string)); err != nil {
			return err
		}
	}

	m.setCookie(c, "", -1)
	c.Set(ctxIdentity, nil)
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}

// Identity returns the session data bound to the request, if any
func Identity(c *gin.Context) (*Data, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil, false
	}
	data, ok := v.(*Data)
	return data, ok && data != nil
}

// UserID returns the acting user id, or 0 for anonymous requests
func UserID(c *gin.Context) int64 {
	if data, ok := Identity(c); ok {
		return data.UserID
	}
	return 0
}
