package handler

import (
	"errors"
	"strings"

	"dcet-prep/internal/domain"
	"dcet-prep/internal/dto"
	"dcet-prep/internal/logger"
	"dcet-prep/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login, and account-recovery requests.
// Business failures are served as success:false JSON with HTTP 200; only
// malformed requests and infrastructure faults use error statuses.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Invalid request body"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Email and password are required"})
	}

	resp, err := h.authService.Login(c.Context(), email, req.Password)
	if err != nil {
		return domain.NewInternalError("failed to process login", err)
	}
	return c.JSON(resp)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Invalid request body"})
	}

	resp, err := h.authService.Register(c.Context(), req)
	if err != nil {
		return domain.NewInternalError("failed to process registration", err)
	}
	return c.JSON(resp)
}

// AdminLogin handles POST /auth/admin-login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Invalid request body"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Username and password are required"})
	}

	resp, err := h.authService.AdminLogin(c.Context(), username, req.Password)
	if err != nil {
		return domain.NewInternalError("failed to process admin login", err)
	}
	return c.JSON(resp)
}

// VerifyToken handles GET /auth/verify-token (session check).
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.AuthResponse{
			Success: false,
			Message: "No token provided",
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	user, err := h.authService.CurrentUser(c.Context(), token)
	if err != nil {
		return domain.NewInternalError("failed to resolve current user", err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.AuthResponse{
			Success: false,
			Message: "Invalid token",
		})
	}

	return c.JSON(dto.AuthResponse{Success: true, User: user})
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.AuthResponse{Success: true})
	}

	resp, err := h.authService.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		return domain.NewInternalError("failed to process password reset request", err)
	}
	return c.JSON(resp)
}

// ResetPassword handles POST /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Invalid request body"})
	}
	if req.Password == "" {
		return c.JSON(dto.AuthResponse{Success: false, Message: "Password is required"})
	}

	resp, err := h.authService.ResetPassword(c.Context(), token, req.Password)
	if err != nil {
		return domain.NewInternalError("failed to reset password", err)
	}
	return c.JSON(resp)
}

// VerifyEmail handles GET /auth/verify-email/:token. A valid token marks
// the account verified and redirects to the dashboard with a fresh access
// token for auto-login.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")

	jwtToken, err := h.authService.VerifyEmail(c.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerifyToken) {
			return c.Redirect("/?verify=failed", fiber.StatusFound)
		}
		logger.Get().Error("Email verification failed", zap.Error(err))
		return domain.NewInternalError("failed to verify email", err)
	}

	return c.Redirect("/dashboard?token="+jwtToken, fiber.StatusFound)
}
