package auth

import (
	"albumserver/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const userIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) error {
	s.Set(userIdKey, user.ID)
	return s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
}

func (s *Session) UserID() uint64 {
	id, _ := s.Get(userIdKey).(uint64)
	return id
}

// User loads the logged in user, ID is 0 when there is none
func (s *Session) User(db *gorm.DB) (user models.User) {
	id := s.UserID()
	if id == 0 {
		return
	}
	if db.First(&user, "id = ?", id).Error != nil {
		user = models.User{}
	}
	return
}
