package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPassword(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.True(t, user.MatchPassword("s3cret-pass"))
	assert.False(t, user.MatchPassword("wrong"))
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")
}

// The hash and the reset token pair never appear in serialized output.
func TestUserJSONHidesSecrets(t *testing.T) {
	var user User
	require.NoError(t, user.SetPassword("s3cret-pass"))
	token := "reset-token"
	user.ResetPasswordToken = &token

	payload, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), user.Password)
	assert.NotContains(t, string(payload), "reset-token")
}
