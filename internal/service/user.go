package service

import (
	"context"
	"errors"
	"fmt"

	"tracks-graphql/internal/auth"
	"tracks-graphql/internal/domain"
	"tracks-graphql/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserService 负责用户账号相关的业务逻辑。
type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

// NewUserService 创建 UserService 实例。hashCost 非法时使用 bcrypt.DefaultCost。
func NewUserService(userRepo repository.UserRepository, hashCost int) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, hashCost: hashCost}
}

// CreateUser 哈希密码后保存新用户。
// 插入前不检查唯一性，依赖数据库的唯一索引。
func (s *UserService) CreateUser(ctx context.Context, username, password, email string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	hashedPassword, err := s.hashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		logCtx.WithError(err).Error("Failed to hash password during user creation")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Password: hashedPassword,
		Email:    email,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("CreateUser: Username already exists")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User created successfully")
	return user, nil
}

// GetUser 根据 ID 查找用户
func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	return s.found(user, err, logrus.Fields{"user_id": id})
}

// GetUserByName 根据用户名查找用户
func (s *UserService) GetUserByName(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	return s.found(user, err, logrus.Fields{"username": username})
}

// Me 返回当前调用者，匿名请求返回 ErrNotLoggedIn。
func (s *UserService) Me(ctx context.Context) (*domain.User, error) {
	caller, ok := auth.CallerFrom(ctx)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return caller, nil
}

// Authenticate 把已校验 token 中的用户 ID 解析为调用者，供认证中间件使用。
func (s *UserService) Authenticate(ctx context.Context, userID uint) (*domain.User, error) {
	return s.GetUser(ctx, userID)
}

func (s *UserService) found(user *domain.User, err error, fields logrus.Fields) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithFields(fields).Debug("User not found")
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithFields(fields).Error("User lookup: Repository error")
		return nil, ErrInternalServer
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// hashPassword 使用 bcrypt 对密码进行哈希处理
func (s *UserService) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}
