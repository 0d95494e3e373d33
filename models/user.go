package models

import (
	"albumserver/utils"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmailTaken = errors.New("email address already registered")

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150);index:uniq_email,unique"` // always normalized
	Password  string `gorm:"type:varchar(128)"`
	PushToken string `gorm:"type:varchar(128)"`
}

// UserCreate returns ErrEmailTaken when the normalized address already has an account,
// also when a concurrent signup wins the unique index
func UserCreate(db *gorm.DB, name, email, plainTextPassword string) (u User, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return u, err
	}
	u.Name = name
	u.Email = utils.NormalizeEmail(email)
	u.Password = string(hash)
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&u)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrEmailTaken
	}
	return u, nil
}

func UserLogin(db *gorm.DB, email, plainTextPassword string) (u User, success bool) {
	u, err := FindUserByEmail(db, email)
	if err != nil {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) != nil {
		return User{}, false
	}
	return u, true
}

// FindUserByEmail returns gorm.ErrRecordNotFound when no account uses the address
func FindUserByEmail(db *gorm.DB, email string) (u User, err error) {
	err = db.First(&u, "email = ?", utils.NormalizeEmail(email)).Error
	return
}

func (u *User) SetNewPushToken(db *gorm.DB) error {
	u.PushToken = utils.RandToken()
	return db.Model(u).Update("push_token", u.PushToken).Error
}
