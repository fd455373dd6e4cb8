package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anjiri1684/english_assistant/ai"
	"github.com/anjiri1684/english_assistant/auth"
	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/handlers"
	"github.com/anjiri1684/english_assistant/models"
	"github.com/anjiri1684/english_assistant/routes"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// stubMailer records outgoing mail instead of hitting Brevo. Setting fail
// simulates an unreachable mail service.
type stubMailer struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	toName, toEmail, subject, html string
}

func (m *stubMailer) Send(toName, toEmail, subject, html string) error {
	if m.fail {
		return errors.New("mail service unreachable")
	}
	m.sent = append(m.sent, sentMail{toName, toEmail, subject, html})
	return nil
}

type testEnv struct {
	app    *fiber.App
	tokens *auth.TokenService
	mailer *stubMailer
}

// newTestEnv wires the full route table against a fresh in-memory database,
// mirroring the wiring in cmd/api/main.go. aiClient may be nil when the AI
// endpoints are not under test.
func newTestEnv(t *testing.T, aiClient *ai.Client) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Conversation{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	tokens := auth.NewTokenService(testSecret)
	mailer := &stubMailer{}
	if aiClient == nil {
		aiClient = ai.NewClient("unused", "http://127.0.0.1:1")
	}

	app := fiber.New()
	routes.AuthRoutes(app, handlers.NewAuthHandler(tokens, mailer, "http://localhost:5173"), testSecret)
	routes.UserRoutes(app, handlers.NewUserHandler(), testSecret)
	routes.ConversationRoutes(app, handlers.NewConversationHandler(), testSecret)
	routes.AIRoutes(app, handlers.NewAIHandler(aiClient), testSecret)

	return &testEnv{app: app, tokens: tokens, mailer: mailer}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func signupBody(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"fullName": "Test " + username,
		"dob":      "1995-04-12",
		"gender":   "female",
		"username": username,
		"email":    email,
		"password": "password123",
	}
}

// signup registers a user through the API and returns the stored record
// alongside a valid session token for it.
func (e *testEnv) signup(t *testing.T, username, email string) (*models.User, string) {
	t.Helper()

	resp := e.request(t, "POST", "/api/auth/signup", "", signupBody(username, email))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	user, err := database.FindUserByUsername(username)
	require.NoError(t, err)

	token, err := e.tokens.Generate(user.ID)
	require.NoError(t, err)
	return user, token
}
