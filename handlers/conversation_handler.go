package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/middleware"
	"github.com/anjiri1684/english_assistant/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConversationHandler struct{}

func NewConversationHandler() *ConversationHandler {
	return &ConversationHandler{}
}

type CreateConversationRequest struct {
	AssistantName string `json:"assistantName" validate:"required"`
	Gender        string `json:"gender" validate:"required,oneof=male female"`
	Scenario      string `json:"scenario" validate:"required"`
}

// CreateConversation opens a new practice session. The owner is always the
// caller, and the transcript is seeded with the assistant's greeting.
func (h *ConversationHandler) CreateConversation(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	starter := models.Message{
		ID:          "starter-0",
		Sender:      models.SenderAI,
		Text:        fmt.Sprintf("Hello! I'm %s. Let's start our %s practice. What would you like to talk about?", req.AssistantName, req.Scenario),
		Translation: fmt.Sprintf("Xin chào! Tôi là %s. Hãy bắt đầu buổi luyện tập về %s. Bạn muốn nói về điều gì?", req.AssistantName, req.Scenario),
	}

	conversation := models.Conversation{
		UserID:        user.ID,
		Title:         fmt.Sprintf("%s - %s Practice", req.AssistantName, capitalize(req.Scenario)),
		AssistantName: req.AssistantName,
		Gender:        req.Gender,
		Scenario:      req.Scenario,
		Messages:      []models.Message{starter},
	}

	if err := database.CreateConversation(&conversation); err != nil {
		log.Printf("Error creating conversation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while creating conversation."})
	}

	return c.Status(fiber.StatusCreated).JSON(conversation)
}

func (h *ConversationHandler) GetConversations(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	conversations, err := database.ListConversations(user.ID)
	if err != nil {
		log.Printf("Error fetching conversations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while fetching conversations."})
	}

	return c.JSON(conversations)
}

func (h *ConversationHandler) GetConversationByID(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	// A record owned by someone else reads as missing. Never 403 here.
	conversation, err := database.FindConversation(conversationID, user.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		log.Printf("Error fetching conversation by ID: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while fetching conversation."})
	}

	return c.JSON(conversation)
}

type UpdateConversationRequest struct {
	Title    *string          `json:"title"`
	Messages []models.Message `json:"messages"`
}

func (h *ConversationHandler) UpdateConversation(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	var req UpdateConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	conversation, err := database.UpdateConversation(conversationID, user.ID, req.Title, req.Messages)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		log.Printf("Error updating conversation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while updating conversation."})
	}

	return c.JSON(conversation)
}

func (h *ConversationHandler) DeleteConversation(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	conversationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	if err := database.DeleteConversation(conversationID, user.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		log.Printf("Error deleting conversation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error while deleting conversation."})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
