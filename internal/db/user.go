package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

var ErrUserExists = errors.New("user already exists")

// User 定义了用户模型
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"not null;default:viewer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may use the admin surface.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUser 创建一个 bcrypt 哈希密码的用户，用户名重复时返回 ErrUserExists。
func CreateUser(gdb *gorm.DB, username, password, role string) (*User, error) {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil, errors.New("username and password are required")
	}
	if role != RoleAdmin {
		role = RoleViewer
	}

	var existing User
	err := gdb.Where("username = ?", trimmedUser).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{Username: trimmedUser, Password: string(hashed), Role: role}
	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建管理员账号。
func EnsureAdmin(gdb *gorm.DB, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	if gdb == nil {
		return errors.New("database not initialized")
	}

	if _, err := CreateUser(gdb, username, password, RoleAdmin); err != nil && !errors.Is(err, ErrUserExists) {
		return err
	}
	return nil
}

// Authenticate 校验用户名与密码，失败时返回 gorm.ErrRecordNotFound 或 bcrypt 错误。
func Authenticate(gdb *gorm.DB, username, password string) (*User, error) {
	var user User
	if err := gdb.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}
	return &user, nil
}
