package handlers

import (
	"fmt"
	"log"

	"github.com/anjiri1684/english_assistant/ai"
	"github.com/gofiber/fiber/v2"
)

// AIHandler shapes requests to the Gemini client. Downstream failures never
// surface as raw errors: each endpoint falls back to a placeholder payload
// in its normal shape so clients need no special-case error parsing.
type AIHandler struct {
	client *ai.Client
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

type ChatRequest struct {
	History       []ai.Turn `json:"history"`
	AssistantName string    `json:"assistantName"`
	Scenario      string    `json:"scenario"`
}

func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if len(req.History) == 0 || req.AssistantName == "" || req.Scenario == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: history, assistantName, scenario"})
	}

	response, translation, err := h.client.ChatReply(c.Context(), req.History, req.AssistantName, req.Scenario)
	if err != nil {
		log.Printf("Error in Chat: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"response":    "An error occurred while communicating with the AI service.",
			"translation": "Đã xảy ra lỗi khi giao tiếp với dịch vụ AI.",
		})
	}

	return c.JSON(fiber.Map{
		"response":    response,
		"translation": translation,
	})
}

type SuggestionsRequest struct {
	TextToImprove string `json:"textToImprove"`
}

func (h *AIHandler) Suggestions(c *fiber.Ctx) error {
	var req SuggestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.TextToImprove == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: textToImprove"})
	}

	suggestions, err := h.client.SentenceSuggestions(c.Context(), req.TextToImprove)
	if err != nil {
		log.Printf("Error in Suggestions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON([]string{})
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	return c.JSON(suggestions)
}

type TopicSuggestionRequest struct {
	Scenario string    `json:"scenario"`
	History  []ai.Turn `json:"history"`
}

func (h *AIHandler) TopicSuggestion(c *fiber.Ctx) error {
	var req TopicSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Scenario == "" || len(req.History) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: scenario, history"})
	}

	suggestion, translation, err := h.client.TopicSuggestion(c.Context(), req.Scenario, req.History)
	if err != nil {
		log.Printf("Error in TopicSuggestion: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"response":    "An error occurred while trying to get a suggestion.",
			"translation": "Đã xảy ra lỗi khi cố gắng lấy gợi ý.",
		})
	}

	return c.JSON(fiber.Map{
		"response":    fmt.Sprintf("How about this: \"%s\"", suggestion),
		"translation": fmt.Sprintf("Thử nói thế này xem: \"%s\"", translation),
	})
}

func (h *AIHandler) RandomSentence(c *fiber.Ctx) error {
	sentence, ipa, err := h.client.RandomSentence(c.Context())
	if err != nil {
		log.Printf("Error in RandomSentence: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"sentence": "An error occurred while communicating with the AI service.",
			"ipa":      "",
		})
	}

	return c.JSON(fiber.Map{
		"sentence": sentence,
		"ipa":      ipa,
	})
}
