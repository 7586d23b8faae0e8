package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

var UserColumns = []string{"id", "username", "email", "password_hash", "role", "is_active", "created_at", "last_login"}

// 用户角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 用户模型
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// SetPassword 加密并设置密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func (u User) Row() Row {
	return Row{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"is_active":     formatBool(u.IsActive),
		"created_at":    formatTime(u.CreatedAt),
		"last_login":    formatOptTime(u.LastLogin),
	}
}

func UserFromRow(r Row) (User, error) {
	u := User{
		ID:           r["id"],
		Username:     r["username"],
		Email:        r["email"],
		PasswordHash: r["password_hash"],
		Role:         r["role"],
	}

	var err error
	if u.IsActive, err = parseBool(r, "is_active"); err != nil {
		return User{}, err
	}
	if u.CreatedAt, err = parseTime(r, "created_at"); err != nil {
		return User{}, err
	}
	if u.LastLogin, err = parseOptTime(r, "last_login"); err != nil {
		return User{}, err
	}
	return u, nil
}
