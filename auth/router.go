package auth

import (
	"net/http"

	"albumserver/sharing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandlerFunc is only called for authenticated users
type HandlerFunc func(c *gin.Context, caller *sharing.Identity)

// IdentityFunc resolves the caller of a request, nil when not logged in
type IdentityFunc func(c *gin.Context) *sharing.Identity

// SessionIdentity resolves callers from the session cookie
func SessionIdentity(db *gorm.DB) IdentityFunc {
	return func(c *gin.Context) *sharing.Identity {
		user := LoadSession(c).User(db.WithContext(c.Request.Context()))
		if user.ID == 0 {
			return nil
		}
		return &sharing.Identity{ID: user.ID, Email: user.Email}
	}
}

// Router is a wrapper class that adds auth checks + caller identity
type Router struct {
	Base     gin.IRouter
	Identity IdentityFunc
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	caller := cr.Identity(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": sharing.ErrNotAuthenticated.Message, "code": sharing.KindNotAuthenticated})
		return
	}
	handler(c, caller)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
