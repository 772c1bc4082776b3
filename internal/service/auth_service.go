package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"dcet-prep/internal/config"
	"dcet-prep/internal/domain"
	"dcet-prep/internal/dto"
	"dcet-prep/internal/logger"
	"dcet-prep/internal/mailer"
	"dcet-prep/internal/repository"
	"dcet-prep/internal/repository/models"
	"dcet-prep/internal/util"
	"dcet-prep/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyTokenTTL = 30 * time.Minute
	resetTokenTTL  = 30 * time.Minute
)

var (
	ErrInvalidJWTToken    = errors.New("invalid jwt token")
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
)

// AuthService defines the interface for authentication operations. Business
// failures (wrong password, duplicate email, weak password) come back as
// success:false responses; errors are reserved for infrastructure faults.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	AdminLogin(ctx context.Context, username, password string) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context, tokenString string) (*dto.UserPayload, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateAccessToken(userID, role string) (string, error)
	ForgotPassword(ctx context.Context, email string) (*dto.AuthResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	mail      mailer.Mailer
	validator *validation.Validator
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, appConfig *config.Config) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		mail:      mail,
		validator: validation.NewValidator(),
		appConfig: appConfig,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	appLogger := logger.Get()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return failure("Username and email are required"), nil
	}
	if !s.validator.ValidEmail(email) {
		return failure("Invalid email format"), nil
	}

	if msg := s.validator.PasswordStrength(req.Password); msg != "" {
		return failure(msg), nil
	}

	if existing, err := s.userRepo.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return failure("Email already registered"), nil
	}

	if existing, err := s.userRepo.GetUserByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return failure("Username already taken"), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken, err := randomToken()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                     util.NewULID(),
		Email:                  email,
		Username:               username,
		PasswordHash:           string(hash),
		MobileNumber:           util.StringToNullString(strings.TrimSpace(req.MobileNumber)),
		RegNumber:              util.StringToNullString(strings.TrimSpace(req.RegNumber)),
		CollegeName:            util.StringToNullString(strings.TrimSpace(req.CollegeName)),
		Role:                   domain.RoleStudent,
		EmailVerified:          false,
		EmailVerifyToken:       util.StringToNullString(verifyToken),
		EmailVerifyTokenExpiry: util.TimeToNullTime(time.Now().Add(verifyTokenTTL)),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Verification mail is best-effort; registration already succeeded.
	verifyLink := fmt.Sprintf("%s/auth/verify-email/%s", s.appConfig.AppBaseURL, verifyToken)
	if err := s.mail.SendVerificationEmail(email, verifyLink); err != nil {
		appLogger.Warn("Failed to send verification email", zap.String("email", email), zap.Error(err))
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Registration successful. Verification email sent.",
		User: &dto.UserPayload{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return failure("Invalid email or password"), nil
	}

	role := strings.ToLower(strings.TrimSpace(user.Role))
	if role != domain.RoleStudent {
		return failure("Not a student account"), nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return failure("Invalid email or password"), nil
	}

	token, err := s.CreateAccessToken(user.ID, role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User: &dto.UserPayload{
			ID:            user.ID,
			Email:         user.Email,
			Username:      user.Username,
			RegNumber:     user.RegNumber.String,
			CollegeName:   user.CollegeName.String,
			Role:          role,
			EmailVerified: user.EmailVerified,
		},
	}, nil
}

func (s *authServiceImpl) AdminLogin(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return failure("Invalid credentials"), nil
	}

	role := strings.ToLower(strings.TrimSpace(user.Role))
	if role != domain.RoleAdmin {
		return failure("Invalid credentials"), nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return failure("Invalid credentials"), nil
	}

	token, err := s.CreateAccessToken(user.ID, role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Admin login successful",
		Token:   token,
		User: &dto.UserPayload{
			ID:       user.ID,
			Username: user.Username,
			Role:     role,
		},
	}, nil
}

func (s *authServiceImpl) CreateAccessToken(userID, role string) (string, error) {
	claims := dto.AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.appConfig.JWT.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// CurrentUser resolves a bearer token to its user payload. Returns nil for
// any invalid token or missing user.
func (s *authServiceImpl) CurrentUser(ctx context.Context, tokenString string) (*dto.UserPayload, error) {
	claims, err := s.ValidateJWT(ctx, tokenString)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &dto.UserPayload{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		MobileNumber:  user.MobileNumber.String,
		RegNumber:     user.RegNumber.String,
		CollegeName:   user.CollegeName.String,
		Role:          strings.ToLower(strings.TrimSpace(user.Role)),
		EmailVerified: user.EmailVerified,
	}, nil
}

// ForgotPassword always reports success so the endpoint does not leak which
// addresses hold accounts.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, email string) (*dto.AuthResponse, error) {
	appLogger := logger.Get()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return &dto.AuthResponse{Success: true}, nil
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &dto.AuthResponse{Success: true}, nil
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return nil, err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.appConfig.AppBaseURL, token)
	if err := s.mail.SendResetEmail(email, resetLink); err != nil {
		appLogger.Warn("Failed to send reset email", zap.String("email", email), zap.Error(err))
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Password reset link sent to your email",
	}, nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return failure("Invalid or expired reset link"), nil
	}

	if msg := s.validator.PasswordStrength(newPassword); msg != "" {
		return failure(msg), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return nil, err
	}
	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Password updated successfully",
	}, nil
}

// VerifyEmail marks the account verified and returns a fresh access token
// for the auto-login redirect.
func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) (string, error) {
	user, err := s.userRepo.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidVerifyToken
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return "", err
	}

	return s.CreateAccessToken(user.ID, strings.ToLower(strings.TrimSpace(user.Role)))
}

func failure(message string) *dto.AuthResponse {
	return &dto.AuthResponse{Success: false, Message: message}
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
