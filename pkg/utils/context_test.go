package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	userID := uuid.New()
	ctx := SetUserContext(context.Background(), userID, "Staff")

	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "Staff", role)

	_, ok = GetTokenFromContext(ctx)
	assert.False(t, ok)
}

func TestUserContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetUserIDFromContext(SetUserContext(context.Background(), uuid.Nil, "User"))
	assert.False(t, ok, "nil user id is not an identity")

	_, ok = GetRoleFromContext(SetUserContext(context.Background(), uuid.New(), ""))
	assert.False(t, ok)

	// values stored under another package's key named "token" are not ours
	type foreignKey string
	ctx := context.WithValue(context.Background(), foreignKey("token"), "forged")
	_, ok = GetTokenFromContext(ctx)
	assert.False(t, ok)
}

func TestTokenContext(t *testing.T) {
	ctx := SetTokenContext(context.Background(), "3f1c")
	token, ok := GetTokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "3f1c", token)
}

func TestResponseError(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseError(rec, http.StatusConflict, "seat C4 already booked", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string]any{"status": false, "message": "seat C4 already booked"}, body)
}
