package handlers

import (
	"net/http"
	"strings"
	"time"

	"albumserver/auth"
	"albumserver/models"
	"albumserver/sharing"
	"albumserver/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pkg/errors"
)

type UserCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required,min=8"`
}

type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *API) UserSignup(c *gin.Context) {
	r := UserCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	email := utils.NormalizeEmail(r.Email)
	if !utils.IsEmail(email) {
		c.JSON(http.StatusUnprocessableEntity, Response{Error: "a valid email address is required", Code: sharing.KindInvalidArgument})
		return
	}
	user, err := models.UserCreate(a.DB.WithContext(c.Request.Context()), strings.TrimSpace(r.Name), email, r.Password)
	if errors.Is(err, models.ErrEmailTaken) {
		c.JSON(http.StatusConflict, Response{Error: "this email address is already registered", Code: sharing.KindAlreadyMember})
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Msg("signup: create user")
		c.JSON(http.StatusInternalServerError, Response{Error: sharing.ErrStoreFailure.Message, Code: sharing.KindStoreFailure})
		return
	}
	if err := auth.LoadSession(c).LoginUser(&user); err != nil {
		a.Log.Error().Err(err).Uint64("user_id", user.ID).Msg("signup: save session")
	}
	c.JSON(http.StatusOK, UserInfo{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (a *API) UserLogin(c *gin.Context) {
	r := UserLoginRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		badRequest(c, err)
		return
	}
	db := a.DB.WithContext(c.Request.Context())
	email := utils.NormalizeEmail(r.Email)
	if a.Login.Attempts > 0 {
		allowed, err := models.HitRateCounter(db, "login:"+email, a.Login.Attempts, a.Login.Window, time.Now().Unix())
		if err != nil {
			a.Log.Error().Err(err).Msg("login: count attempts")
			c.JSON(http.StatusInternalServerError, Response{Error: sharing.ErrStoreFailure.Message, Code: sharing.KindStoreFailure})
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, Response{Error: sharing.ErrRateLimited.Message, Code: sharing.KindRateLimited})
			return
		}
	}
	user, ok := models.UserLogin(db, email, r.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Error: "wrong email or password", Code: sharing.KindNotAuthenticated})
		return
	}
	if err := auth.LoadSession(c).LoginUser(&user); err != nil {
		a.Log.Error().Err(err).Uint64("user_id", user.ID).Msg("login: save session")
		c.JSON(http.StatusInternalServerError, Response{Error: "cannot save session"})
		return
	}
	a.Log.Info().Uint64("user_id", user.ID).Msg("user logged in")
	c.JSON(http.StatusOK, UserInfo{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (a *API) UserStatus(c *gin.Context, caller *sharing.Identity) {
	user := models.User{}
	if err := a.DB.WithContext(c.Request.Context()).First(&user, "id = ?", caller.ID).Error; err != nil {
		a.Fail(c, sharing.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, UserInfo{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (a *API) UserLogout(c *gin.Context, _ *sharing.Identity) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}
