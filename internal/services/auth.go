package services

import (
	"errors"

	"github.com/prismhq/prism/internal/config"
	"github.com/prismhq/prism/internal/models"
	"github.com/prismhq/prism/internal/utils"
	"github.com/prismhq/prism/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, cfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"user_name" binding:"required,max=63"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=127"`
	LastName  string `json:"last_name" binding:"required,max=127"`
	Address   string `json:"address" binding:"omitempty,max=255"`
	Phone     string `json:"phone" binding:"omitempty,max=63"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register creates a user account. It never creates a workspace or any
// membership; a fresh account owns nothing.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewValidationFailed("email or username already registered")
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(req *LoginRequest) (*TokenPair, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, response.NewUnauthorized("account is disabled")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, nil, response.NewUnauthorized("invalid email or password")
	}

	pair, err := s.issueTokens(&user)
	if err != nil {
		return nil, nil, err
	}
	return pair, &user, nil
}

// Refresh validates a refresh token and issues a new pair.
func (s *AuthService) Refresh(req *RefreshRequest) (*TokenPair, error) {
	claims, err := utils.ParseToken(req.Refresh)
	if err != nil {
		return nil, response.NewUnauthorized("invalid or expired refresh token")
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		return nil, response.NewUnauthorized("refresh token required")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return nil, response.NewUnauthorized("account no longer exists")
	}
	if !user.IsActive {
		return nil, response.NewUnauthorized("account is disabled")
	}

	return s.issueTokens(&user)
}

// GetUser returns the account behind an authenticated caller id.
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(user.ID, user.Username, s.cfg.ExpireHour)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, user.Username, s.cfg.RefreshExpireHour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
