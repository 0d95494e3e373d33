package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"albumserver/sharing"

	"github.com/gin-gonic/gin"
)

// headerIdentity trusts an X-User header, enough to exercise the router
func headerIdentity(c *gin.Context) *sharing.Identity {
	id, err := strconv.ParseUint(c.GetHeader("X-User"), 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &sharing.Identity{ID: id, Email: "user" + c.GetHeader("X-User") + "@example.com"}
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router := &Router{Base: engine, Identity: headerIdentity}
	var seen *sharing.Identity
	router.GET("/whoami", func(c *gin.Context, caller *sharing.Identity) {
		seen = caller
		c.String(http.StatusOK, caller.Email)
	})
	router.POST("/whoami", func(c *gin.Context, caller *sharing.Identity) {
		c.String(http.StatusOK, "posted")
	})

	tests := []struct {
		method string
		user   string
		status int
		body   string
	}{
		{http.MethodGet, "", http.StatusUnauthorized, string(sharing.KindNotAuthenticated)},
		{http.MethodGet, "abc", http.StatusUnauthorized, string(sharing.KindNotAuthenticated)},
		{http.MethodGet, "7", http.StatusOK, "user7@example.com"},
		{http.MethodPost, "", http.StatusUnauthorized, sharing.ErrNotAuthenticated.Message},
		{http.MethodPost, "7", http.StatusOK, "posted"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/whoami", nil)
		if tt.user != "" {
			req.Header.Set("X-User", tt.user)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != tt.status || !strings.Contains(w.Body.String(), tt.body) {
			t.Errorf("%s as %q: %d %q", tt.method, tt.user, w.Code, w.Body.String())
		}
	}
	if seen == nil || seen.ID != 7 {
		t.Errorf("handler saw %+v", seen)
	}
}
