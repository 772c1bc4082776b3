package service

import (
	"context"
	"testing"
	"time"

	"dcet-prep/internal/config"
	"dcet-prep/internal/domain"
	"dcet-prep/internal/dto"
	"dcet-prep/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "testsecretkeydontuseinproduction32bytes!",
			AccessTokenTTL: 15 * time.Minute,
		},
		AppBaseURL: "http://127.0.0.1:8080",
	}
}

func newTestAuthService(t *testing.T, repo *MockUserRepository, mail *MockMailer) AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, mail, testAuthConfig())
	require.NoError(t, err)
	return svc
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNewAuthService_MissingSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = ""
	_, err := NewAuthService(new(MockUserRepository), new(MockMailer), cfg)
	assert.Error(t, err)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(MockUserRepository)
	mail := new(MockMailer)
	repo.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	repo.On("GetUserByUsername", mock.Anything, "newuser").Return(nil, nil)
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mail.On("SendVerificationEmail", "new@example.com", mock.Anything).Return(nil)

	svc := newTestAuthService(t, repo, mail)
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "New@Example.com",
		Username: "newuser",
		Password: "Str0ng@Pass",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleStudent, resp.User.Role)
	repo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository), new(MockMailer))

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "a@b.com",
		Username: "u",
		Password: "short",
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "at least 8 characters")
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository), new(MockMailer))

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "not-an-email",
		Username: "u",
		Password: "Str0ng@Pass",
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid email format", resp.Message)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetUserByEmail", mock.Anything, "taken@example.com").
		Return(&models.User{ID: "existing"}, nil)

	svc := newTestAuthService(t, repo, new(MockMailer))
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "taken@example.com",
		Username: "someone",
		Password: "Str0ng@Pass",
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email already registered", resp.Message)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestAuthService_Register_MailFailureStillSucceeds(t *testing.T) {
	repo := new(MockUserRepository)
	mail := new(MockMailer)
	repo.On("GetUserByEmail", mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("GetUserByUsername", mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	mail.On("SendVerificationEmail", mock.Anything, mock.Anything).
		Return(assert.AnError)

	svc := newTestAuthService(t, repo, mail)
	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "a@b.com",
		Username: "u",
		Password: "Str0ng@Pass",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthService_Login(t *testing.T) {
	student := &models.User{
		ID:           "user1",
		Email:        "stu@example.com",
		Username:     "stu",
		PasswordHash: hashFor(t, "Str0ng@Pass"),
		Role:         domain.RoleStudent,
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "stu@example.com").Return(student, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.Login(context.Background(), "Stu@Example.com", "Str0ng@Pass")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "user1", resp.User.ID)

		// The issued token resolves back to the same user.
		claims, err := svc.ValidateJWT(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "user1", claims.UserID)
		assert.Equal(t, domain.RoleStudent, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "stu@example.com").Return(student, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.Login(context.Background(), "stu@example.com", "wrong")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("admin cannot use student login", func(t *testing.T) {
		admin := &models.User{
			ID:           "admin1",
			Email:        "admin@example.com",
			PasswordHash: hashFor(t, "Str0ng@Pass"),
			Role:         domain.RoleAdmin,
		}
		repo := new(MockUserRepository)
		repo.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.Login(context.Background(), "admin@example.com", "Str0ng@Pass")

		require.NoError(t, err)
		assert.False(t, resp.Success)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	admin := &models.User{
		ID:           "admin1",
		Username:     "boss",
		PasswordHash: hashFor(t, "Str0ng@Pass"),
		Role:         domain.RoleAdmin,
	}

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", mock.Anything, "boss").Return(admin, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.AdminLogin(context.Background(), "boss", "Str0ng@Pass")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("student rejected with generic message", func(t *testing.T) {
		student := &models.User{
			ID:           "user1",
			Username:     "stu",
			PasswordHash: hashFor(t, "Str0ng@Pass"),
			Role:         domain.RoleStudent,
		}
		repo := new(MockUserRepository)
		repo.On("GetUserByUsername", mock.Anything, "stu").Return(student, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.AdminLogin(context.Background(), "stu", "Str0ng@Pass")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
	})
}

func TestAuthService_ValidateJWT_Garbage(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository), new(MockMailer))
	_, err := svc.ValidateJWT(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(t, repo, new(MockMailer))

	token, err := svc.CreateAccessToken("user1", domain.RoleStudent)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		repo.On("GetUserByID", mock.Anything, "user1").
			Return(&models.User{ID: "user1", Email: "stu@example.com", Role: domain.RoleStudent}, nil).Once()

		payload, err := svc.CurrentUser(context.Background(), token)
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, "stu@example.com", payload.Email)
	})

	t.Run("invalid token yields nil payload", func(t *testing.T) {
		payload, err := svc.CurrentUser(context.Background(), "garbage")
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("deleted user yields nil payload", func(t *testing.T) {
		repo.On("GetUserByID", mock.Anything, "user1").Return(nil, nil).Once()

		payload, err := svc.CurrentUser(context.Background(), token)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("known email saves token and mails link", func(t *testing.T) {
		repo := new(MockUserRepository)
		mail := new(MockMailer)
		repo.On("GetUserByEmail", mock.Anything, "stu@example.com").
			Return(&models.User{ID: "user1", Email: "stu@example.com"}, nil)
		repo.On("SaveResetToken", mock.Anything, "user1", mock.Anything, mock.Anything).Return(nil)
		mail.On("SendResetEmail", "stu@example.com", mock.Anything).Return(nil)

		svc := newTestAuthService(t, repo, mail)
		resp, err := svc.ForgotPassword(context.Background(), "stu@example.com")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("unknown email still reports success", func(t *testing.T) {
		repo := new(MockUserRepository)
		mail := new(MockMailer)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		svc := newTestAuthService(t, repo, mail)
		resp, err := svc.ForgotPassword(context.Background(), "ghost@example.com")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		mail.AssertNotCalled(t, "SendResetEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("valid token updates password and clears token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByResetToken", mock.Anything, "tok").
			Return(&models.User{ID: "user1"}, nil)
		repo.On("UpdatePassword", mock.Anything, "user1", mock.Anything).Return(nil)
		repo.On("ClearResetToken", mock.Anything, "user1").Return(nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.ResetPassword(context.Background(), "tok", "Str0ng@Pass")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("expired token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByResetToken", mock.Anything, "stale").Return(nil, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.ResetPassword(context.Background(), "stale", "Str0ng@Pass")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid or expired reset link", resp.Message)
	})

	t.Run("weak replacement password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByResetToken", mock.Anything, "tok").
			Return(&models.User{ID: "user1"}, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		resp, err := svc.ResetPassword(context.Background(), "tok", "weak")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("valid token returns access token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByVerifyToken", mock.Anything, "tok").
			Return(&models.User{ID: "user1", Role: domain.RoleStudent}, nil)
		repo.On("MarkEmailVerified", mock.Anything, "user1").Return(nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		token, err := svc.VerifyEmail(context.Background(), "tok")

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.ValidateJWT(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "user1", claims.UserID)
	})

	t.Run("unknown token", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserByVerifyToken", mock.Anything, "bad").Return(nil, nil)

		svc := newTestAuthService(t, repo, new(MockMailer))
		_, err := svc.VerifyEmail(context.Background(), "bad")
		assert.ErrorIs(t, err, ErrInvalidVerifyToken)
	})
}
