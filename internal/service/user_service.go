package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folio/internal/db"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserService 管理后台账号，供运维命令行使用。
type UserService struct {
	db *gorm.DB
}

func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Create 创建账号；role 不是 admin 时按 viewer 处理。
func (s *UserService) Create(ctx context.Context, username, password, role string) (*db.User, error) {
	return db.CreateUser(s.db.WithContext(ctx), username, password, strings.ToLower(strings.TrimSpace(role)))
}

// Promote 把已有账号提升为管理员。
func (s *UserService) Promote(ctx context.Context, username string) (*db.User, error) {
	var user db.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsAdmin() {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("role", db.RoleAdmin).Error; err != nil {
		return nil, err
	}
	user.Role = db.RoleAdmin
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]db.User, error) {
	var users []db.User
	if err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
