package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/english_assistant/auth"
	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/anjiri1684/english_assistant/models"
	"github.com/anjiri1684/english_assistant/notifications"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const resetTokenValidity = time.Hour

type AuthHandler struct {
	tokens      *auth.TokenService
	mailer      notifications.Mailer
	frontendURL string
}

func NewAuthHandler(tokens *auth.TokenService, mailer notifications.Mailer, frontendURL string) *AuthHandler {
	return &AuthHandler{tokens: tokens, mailer: mailer, frontendURL: frontendURL}
}

type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Dob      string `json:"dob" validate:"required"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required."})
	}

	user := models.User{
		FullName: req.FullName,
		Dob:      req.Dob,
		Gender:   req.Gender,
		Username: req.Username,
		Email:    req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	// The very first account ever created becomes the admin.
	if err := database.CreateUser(&user, true); err != nil {
		switch {
		case errors.Is(err, database.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": fmt.Sprintf("An account with the email '%s' already exists.", req.Email)})
		case errors.Is(err, database.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": fmt.Sprintf("The username '%s' is already taken.", req.Username)})
		default:
			log.Printf("Signup error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error during user registration."})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully. Please login."})
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username/Email and password are required."})
	}

	// Unknown identifier and wrong password are indistinguishable to the
	// caller.
	user, err := database.FindUserByIdentifier(req.Identifier)
	if err != nil || !user.MatchPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Printf("Login error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Dob      *string `json:"dob"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female"`
}

// UpdateProfile mutates name, date of birth and gender only. Username, email
// and password are not reachable through this path.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Dob != nil {
		user.Dob = *req.Dob
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	if err := database.SaveUser(user); err != nil {
		log.Printf("Update profile error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while updating profile."})
	}

	return c.JSON(user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please provide current and new passwords."})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password must be at least 6 characters long."})
	}

	if !user.MatchPassword(req.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid current password"})
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash new password"})
	}
	if err := database.SaveUser(user); err != nil {
		log.Printf("Change password error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while changing password."})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword issues a single-use reset token valid for one hour and
// emails the reset link. Reporting whether the email exists is a deliberate
// product choice carried over from the frontend contract; it trades
// enumeration resistance for direct user feedback.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := database.FindUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No account with that email address exists."})
		}
		log.Printf("Forgot password error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while requesting password reset."})
	}

	tokenBytes := make([]byte, 20)
	if _, err := rand.Read(tokenBytes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate reset token"})
	}
	token := hex.EncodeToString(tokenBytes)

	expiration := time.Now().Add(resetTokenValidity)
	user.ResetPasswordToken = &token
	user.ResetPasswordTokenExpiresAt = &expiration
	if err := database.SaveUser(user); err != nil {
		log.Printf("Forgot password error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save reset token"})
	}

	resetURL := fmt.Sprintf("%s/#/reset-password/%s", h.frontendURL, token)
	emailHTML := notifications.ResetPasswordEmail(user.FullName, user.Gender, resetURL)

	// Delivery is awaited: the caller must not be told the link was sent
	// unless the mail service accepted it.
	if err := h.mailer.Send(user.FullName, user.Email, "Your Password Reset Request", emailHTML); err != nil {
		log.Printf("🔥 Failed to send password reset email to %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error. Could not send password reset email."})
	}

	return c.JSON(fiber.Map{"message": "A password reset link has been sent to your email."})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token and new password are required."})
	}

	var user models.User
	if err := user.SetPassword(req.NewPassword); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash new password"})
	}

	// One conditioned UPDATE: a stale or unknown token changes nothing.
	if err := database.ConsumeResetToken(req.Token, time.Now(), user.Password); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password reset token is invalid or has expired."})
		}
		log.Printf("Reset password error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while resetting password."})
	}

	return c.JSON(fiber.Map{"message": "Password has been reset successfully. You can now log in."})
}
