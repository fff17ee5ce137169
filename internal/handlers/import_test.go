package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

type importResponse struct {
	Items []dto.ItemDTO `json:"items"`
	Rows  []struct {
		Title       string   `json:"title"`
		Status      string   `json:"status"`
		Category    string   `json:"category"`
		ObjectiveID *string  `json:"objective_id"`
		Tags        []string `json:"tags"`
		Issues      []string `json:"issues"`
	} `json:"rows"`
}

func TestImportPreviewDoesNotWrite(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Plan")
	objective := env.createGrouping(t, cookies, roadmap.ID, "objectives", "Growth")

	content := "Title;Description;Status;Category;Objective;Module;Team;Tags\n" +
		`"Ship v2";"Desc";"now";"tech";"growth";;;"a,b"` + "\n" +
		";;weird;;Nowhere;;;"

	w := env.request(t, http.MethodPost,
		"/api/roadmaps/"+roadmap.ID+"/import/preview",
		map[string]interface{}{"content": content, "has_headers": true}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp importResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)

	first := resp.Rows[0]
	assert.Equal(t, "Ship v2", first.Title)
	assert.Equal(t, "now", first.Status)
	assert.Equal(t, "tech", first.Category)
	require.NotNil(t, first.ObjectiveID)
	assert.Equal(t, objective.ID, *first.ObjectiveID)
	assert.Equal(t, []string{"a", "b"}, first.Tags)
	assert.Empty(t, first.Issues)

	second := resp.Rows[1]
	assert.Equal(t, "Missing title", second.Title)
	assert.Equal(t, "later", second.Status)
	assert.Equal(t, "business", second.Category)
	assert.Len(t, second.Issues, 3)

	var count int64
	require.NoError(t, env.db.Model(&models.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportCommitCreatesEveryRow(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Plan")

	// An existing item; imported rows are appended after it.
	env.createItem(t, cookies, roadmap.ID, map[string]string{"title": "Existing"})

	content := "Good;;now;tech;;;;\nBad;;bogus;;;;;"

	w := env.request(t, http.MethodPost,
		"/api/roadmaps/"+roadmap.ID+"/import",
		map[string]interface{}{"content": content, "has_headers": false}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp importResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)

	// Issues are advisory; the flawed row is created anyway, with its
	// fields defaulted.
	assert.Equal(t, "Good", resp.Items[0].Title)
	assert.Equal(t, 1, resp.Items[0].OrderIndex)
	assert.Equal(t, "Bad", resp.Items[1].Title)
	assert.Equal(t, models.StatusLater, resp.Items[1].Status)
	assert.Equal(t, 2, resp.Items[1].OrderIndex)
	assert.NotEmpty(t, resp.Rows[1].Issues)

	var count int64
	require.NoError(t, env.db.Model(&models.Item{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestImportRejectsEmptyUploads(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Plan")

	w := env.request(t, http.MethodPost,
		"/api/roadmaps/"+roadmap.ID+"/import",
		map[string]interface{}{"content": "\n \n", "has_headers": false}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost,
		"/api/roadmaps/"+roadmap.ID+"/import",
		map[string]interface{}{"content": "Title;Description\n", "has_headers": true}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
