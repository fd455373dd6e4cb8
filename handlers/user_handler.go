package handlers

import (
	"errors"
	"log"

	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/anjiri1684/english_assistant/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserHandler carries the admin-only user management endpoints.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type AdminCreateUserRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Dob      string `json:"dob" validate:"required"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// CreateUser lets an admin create an account directly, optionally with the
// admin flag set. The bootstrap rule does not apply here.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req AdminCreateUserRequest
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
		IsAdmin:  req.IsAdmin,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.CreateUser(&user, false); err != nil {
		if errors.Is(err, database.ErrEmailTaken) || errors.Is(err, database.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A user with this email or username already exists."})
		}
		log.Printf("Create user by admin error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while creating user."})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := database.ListUsers()
	if err != nil {
		log.Printf("Get all users error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while fetching users."})
	}
	return c.JSON(users)
}

type UpdateRoleRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

func (h *UserHandler) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Safety check: an admin cannot change their own role.
	if middleware.CurrentUser(c).ID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Admins cannot change their own role."})
	}

	user, err := database.FindUserByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsAdmin = *req.IsAdmin
	if err := database.SaveUser(user); err != nil {
		log.Printf("Update user role error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while updating user role."})
	}

	return c.JSON(user)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user, err := database.FindUserByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if user.IsAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete an admin account."})
	}

	if err := database.DeleteUser(user); err != nil {
		log.Printf("Delete user error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while deleting user."})
	}

	return c.JSON(fiber.Map{"message": "User removed"})
}
