package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/municipalreports/backend/internal/config"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account has been blocked")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role does not exist")
)

type AuthService struct {
	db         *gorm.DB
	cfg        *config.Config
	googleJWKS *GoogleJWKSClient
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:         db,
		cfg:        cfg,
		googleJWKS: NewGoogleJWKSClient(),
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         s.bootstrapRole(req.Email),
		AuthProvider: "email",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	s.stampLastLogin(&user)
	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// GoogleSignIn verifies a Google ID token and signs the user in, creating
// the account on first use. Google emails are pre-verified.
func (s *AuthService) GoogleSignIn(req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if req.IDToken == "" {
		return nil, errors.New("id token is required")
	}

	claims, err := s.googleJWKS.VerifyToken(req.IDToken, s.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return nil, fmt.Errorf("failed to verify Google identity token: %w", err)
	}

	googleUserID := claims.Sub
	email := claims.Email
	if email == "" {
		email = req.Email
	}
	if email == "" {
		return nil, errors.New("google token carries no email")
	}

	var user models.User
	err = s.db.Where("google_user_id = ? OR email = ?", googleUserID, email).First(&user).Error

	if err != nil {
		fullName := claims.Name
		if fullName == "" {
			fullName = req.FullName
		}
		if fullName == "" {
			fullName = strings.Split(email, "@")[0]
		}

		user = models.User{
			ID:           uuid.New(),
			Email:        email,
			Password:     "",
			FullName:     fullName,
			Role:         s.bootstrapRole(email),
			GoogleUserID: &googleUserID,
			AuthProvider: "google",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create Google user: %w", err)
		}
	} else {
		if user.IsBlocked {
			return nil, ErrAccountBlocked
		}
		if user.GoogleUserID == nil {
			s.db.Model(&user).Updates(map[string]interface{}{
				"google_user_id": googleUserID,
				"auth_provider":  "google",
			})
			user.GoogleUserID = &googleUserID
			user.AuthProvider = "google"
		}
		s.stampLastLogin(&user)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := mapUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	resp := mapUserResponse(&user)
	return &resp, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

// AssignRole sets a user's role. Admin-only at the route level.
func (s *AuthService) AssignRole(req *dto.AssignRoleRequest) error {
	if !models.ValidRole(req.Role) {
		return ErrInvalidRole
	}

	result := s.db.Model(&models.User{}).
		Where("id = ?", req.UserID).
		Update("role", req.Role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// bootstrapRole grants admin to emails listed in ADMIN_EMAILS so a fresh
// deployment has at least one admin without manual DB edits.
func (s *AuthService) bootstrapRole(email string) string {
	for _, admin := range strings.Split(s.cfg.AdminEmails, ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return models.RoleAdmin
		}
	}
	return models.RoleCitizen
}

func (s *AuthService) stampLastLogin(user *models.User) {
	now := time.Now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		slog.Error("failed to stamp last login", "error", err, "user_id", user.ID.String())
		return
	}
	user.LastLoginAt = &now
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func mapUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
