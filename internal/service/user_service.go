package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/familyfit/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 在指定用户不存在时返回
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken 在注册的用户名已被占用时返回
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials 在用户名或密码错误时返回
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService 负责用户账号的注册、查询与认证
// 密码一律以 bcrypt 哈希存储，任何查询结果都不应原样回传 Password 字段

type UserService struct {
	db *gorm.DB
}

// UserInput 定义注册用户时可配置字段
type UserInput struct {
	Username string
	Password string
	Name     string
	Role     string
	Avatar   string
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register 创建新用户，用户名重复时返回 ErrUsernameTaken
func (s *UserService) Register(input UserInput) (*db.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = username
	}

	var existing db.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Username: username,
		Password: string(hashed),
		Name:     name,
		Role:     normalizeRole(input.Role),
		Avatar:   strings.TrimSpace(input.Avatar),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Get 根据 ID 获取用户
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// List 返回全部用户
func (s *UserService) List() ([]db.User, error) {
	var users []db.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Authenticate 校验用户名与密码，成功时返回用户记录
func (s *UserService) Authenticate(username, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// UpdateAvatar 更新用户头像 URL
func (s *UserService) UpdateAvatar(id uint, avatarURL string) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.Avatar = strings.TrimSpace(avatarURL)
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return user, nil
}

func normalizeRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role != db.RoleAdmin {
		return db.RoleMember
	}
	return db.RoleAdmin
}
