package auth

import (
	"context"
	"errors"
	"time"

	"github.com/regwatch/core/internal/models"
	jwtpkg "github.com/regwatch/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	// ErrBadCredentials covers both unknown user and wrong password.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrAlreadyInitialized indicates the admin account already exists.
	ErrAlreadyInitialized = errors.New("admin account already exists")
)

// Service owns the single admin account.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and returns a signed JWT.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.UserModel, error) {
	var user models.UserModel
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := jwtpkg.Sign(user.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Register creates the admin account. Only the first registration succeeds.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.UserModel{
		Username: dto.Username,
		Password: string(hash),
		Email:    dto.Email,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Me loads the authenticated user.
func (s *Service) Me(ctx context.Context, userID string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
