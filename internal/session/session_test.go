package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foolivery/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", &Data{UserID: 7, Username: "alice"}, time.Minute))

	data, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, int64(7), data.UserID)
	assert.Equal(t, "alice", data.Username)

	require.NoError(t, s.Delete(ctx, "abc"))
	data, err = s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "abc", &Data{UserID: 1}, time.Minute))

	now = now.Add(2 * time.Minute)
	data, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func newTestRouter(m *Manager) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())

	r.POST("/login", func(c *gin.Context) {
		if err := m.Login(c, models.PublicUser{ID: 1, Username: "alice"}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})

	authed := r.Group("/", RequireAuth())
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c)})
	})
	authed.POST("/logout", func(c *gin.Context) {
		if err := m.Logout(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestManager_LoginLogoutFlow(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, Options{CookieName: "sid", TTL: time.Hour})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized. Please login to continue."}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w, "sid")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Less(t, sessionCookie(t, w, "sid").MaxAge, 0)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestManager_UnknownCookieIsAnonymous(t *testing.T) {
	m := NewManager(NewMemoryStore(), Options{CookieName: "sid"})
	r := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestManager_LoginRotatesSession(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, Options{CookieName: "sid", TTL: time.Hour})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	first := sessionCookie(t, w, "sid")

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(first)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	second := sessionCookie(t, w, "sid")

	assert.NotEqual(t, first.Value, second.Value)
	old, err := store.Load(context.Background(), first.Value)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(NewMemoryStore(), Options{})
	assert.Equal(t, "foolivery_session", m.opts.CookieName)
	assert.Equal(t, 24*time.Hour, m.opts.TTL)
}

func TestUserID_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, int64(0), UserID(c))
}
