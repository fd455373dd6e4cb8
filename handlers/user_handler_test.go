package handlers_test

import (
	"net/http"
	"testing"

	"github.com/anjiri1684/english_assistant/database"
	"github.com/anjiri1684/english_assistant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The scenario from the product contract: first user is admin, second is
// not; only the admin can reach /api/users; the admin cannot delete herself.
func TestAdminScenario(t *testing.T) {
	env := newTestEnv(t, nil)

	alice, aliceToken := env.signup(t, "alice", "alice@example.com")
	require.True(t, alice.IsAdmin)
	bob, bobToken := env.signup(t, "bob", "bob@example.com")
	require.False(t, bob.IsAdmin)

	resp := env.request(t, "GET", "/api/users", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, "GET", "/api/users", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	decodeBody(t, resp, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username, "listing is newest first")
	assert.Equal(t, "alice", users[1].Username)

	resp = env.request(t, "DELETE", "/api/users/"+alice.ID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Cannot delete an admin account.")
}

func TestAdminCreateUser(t *testing.T) {
	env := newTestEnv(t, nil)
	_, aliceToken := env.signup(t, "alice", "alice@example.com")

	body := signupBody("carol", "carol@example.com")
	body["isAdmin"] = true
	resp := env.request(t, "POST", "/api/users", aliceToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.User
	decodeBody(t, resp, &created)
	assert.True(t, created.IsAdmin, "admin may grant the admin flag explicitly")

	// Default is non-admin even though the bootstrap rule made the first
	// signup an admin.
	resp = env.request(t, "POST", "/api/users", aliceToken, signupBody("dave", "dave@example.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decodeBody(t, resp, &created)
	assert.False(t, created.IsAdmin)

	resp = env.request(t, "POST", "/api/users", aliceToken, signupBody("carol", "carol2@example.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateUserRole(t *testing.T) {
	env := newTestEnv(t, nil)
	alice, aliceToken := env.signup(t, "alice", "alice@example.com")
	bob, _ := env.signup(t, "bob", "bob@example.com")

	// Admins cannot change their own role.
	resp := env.request(t, "PATCH", "/api/users/"+alice.ID.String(), aliceToken, map[string]bool{"isAdmin": false})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Admins cannot change their own role.")

	resp = env.request(t, "PATCH", "/api/users/"+bob.ID.String(), aliceToken, map[string]bool{"isAdmin": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	promoted, err := database.FindUserByID(bob.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	resp = env.request(t, "PATCH", "/api/users/not-a-uuid", aliceToken, map[string]bool{"isAdmin": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t, nil)
	_, aliceToken := env.signup(t, "alice", "alice@example.com")
	bob, _ := env.signup(t, "bob", "bob@example.com")

	resp := env.request(t, "DELETE", "/api/users/"+bob.ID.String(), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "User removed")

	_, err := database.FindUserByID(bob.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	resp = env.request(t, "DELETE", "/api/users/"+bob.ID.String(), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUserRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "alice", "alice@example.com")

	resp := env.request(t, "GET", "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
