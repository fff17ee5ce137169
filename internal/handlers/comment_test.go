package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
)

func TestCommentLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	userID, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Plan")
	item := env.createItem(t, cookies, roadmap.ID, map[string]string{"title": "Ship it"})

	base := "/api/roadmaps/" + roadmap.ID + "/items/" + item.ID + "/comments"

	w := env.request(t, http.MethodPost, base, map[string]string{"content": "first!"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.Equal(t, userID, comment.UserID)

	w = env.request(t, http.MethodPatch, base+"/"+comment.ID, map[string]string{"content": "edited"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, base, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Comments []dto.CommentDTO `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Comments, 1)
	assert.Equal(t, "edited", list.Comments[0].Content)
	require.NotNil(t, list.Comments[0].User)
	assert.Equal(t, "owner@example.com", list.Comments[0].User.Email)

	w = env.request(t, http.MethodDelete, base+"/"+comment.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, base, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Comments)
}

func TestCommentAuthorOnlyEdits(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerCookies := env.signupAndLogin(t, "owner@example.com")
	_, otherCookies := env.signupAndLogin(t, "other@example.com")

	roadmap := env.createRoadmap(t, ownerCookies, "Plan")
	item := env.createItem(t, ownerCookies, roadmap.ID, map[string]string{"title": "Ship it"})

	base := "/api/roadmaps/" + roadmap.ID + "/items/" + item.ID + "/comments"

	w := env.request(t, http.MethodPost, base, map[string]string{"content": "mine"}, ownerCookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var comment dto.CommentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	// The roadmap is private, so the other user cannot even see the
	// comment routes.
	w = env.request(t, http.MethodPatch, base+"/"+comment.ID, map[string]string{"content": "stolen"}, otherCookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Empty content is rejected for the author too.
	w = env.request(t, http.MethodPatch, base+"/"+comment.ID, map[string]string{"content": "   "}, ownerCookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
