package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/roadmap-planner-api/internal/constants"
	"github.com/yukikurage/roadmap-planner-api/internal/database"
	"github.com/yukikurage/roadmap-planner-api/internal/dto"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db           *gorm.DB
	router       *gin.Engine
	boardService *services.BoardService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Roadmap{},
		&models.Objective{},
		&models.Module{},
		&models.Team{},
		&models.Item{},
		&models.Comment{},
	))

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	groupingRepo := repository.NewGroupingRepository(db)
	itemRepo := repository.NewItemRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	boardService := services.NewBoardService(roadmapRepo, itemRepo)
	authService := services.NewAuthService(userRepo)
	roadmapService := services.NewRoadmapService(roadmapRepo, boardService)
	groupingService := services.NewGroupingService(groupingRepo, boardService)
	itemService := services.NewItemService(itemRepo, groupingRepo, boardService)
	importService := services.NewImportService(itemRepo, groupingRepo, boardService)
	commentService := services.NewCommentService(commentRepo, itemRepo)

	authHandler := NewAuthHandler(authService)
	roadmapHandler := NewRoadmapHandler(roadmapService)
	groupingHandler := NewGroupingHandler(groupingService)
	itemHandler := NewItemHandler(itemService, boardService, nil)
	boardHandler := NewBoardHandler(boardService)
	importHandler := NewImportHandler(importService)
	commentHandler := NewCommentHandler(commentService)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

	api.GET("/shared/:token", roadmapHandler.GetShared)

	roadmaps := api.Group("/roadmaps")
	roadmaps.Use(middleware.RequireAuth())
	roadmaps.GET("", roadmapHandler.List)
	roadmaps.POST("", roadmapHandler.Create)

	scoped := roadmaps.Group("/:id")
	scoped.Use(middleware.RequireRoadmapAccess())
	scoped.GET("", roadmapHandler.Get)
	scoped.PATCH("", middleware.RequireRoadmapOwner(), roadmapHandler.Update)
	scoped.DELETE("", middleware.RequireRoadmapOwner(), roadmapHandler.Delete)
	scoped.POST("/share", middleware.RequireRoadmapOwner(), roadmapHandler.Share)
	scoped.DELETE("/share", middleware.RequireRoadmapOwner(), roadmapHandler.Unshare)
	scoped.GET("/board", boardHandler.Get)

	registerKind := func(path string, kind repository.GroupingKind) {
		scoped.GET(path, groupingHandler.List(kind))
		scoped.POST(path, groupingHandler.Create(kind))
		scoped.PATCH(path+"/:grouping_id", groupingHandler.Update(kind))
		scoped.DELETE(path+"/:grouping_id", groupingHandler.Delete(kind))
	}
	registerKind("/objectives", repository.KindObjective)
	registerKind("/modules", repository.KindModule)
	registerKind("/teams", repository.KindTeam)

	scoped.GET("/items", itemHandler.List)
	scoped.POST("/items", itemHandler.Create)
	scoped.POST("/import/preview", importHandler.Preview)
	scoped.POST("/import", importHandler.Commit)

	item := scoped.Group("/items/:item_id")
	item.Use(middleware.RequireItemInRoadmap())
	item.GET("", itemHandler.Get)
	item.PATCH("", itemHandler.Update)
	item.DELETE("", itemHandler.Delete)
	item.PATCH("/status", itemHandler.UpdateStatus)
	item.POST("/move", itemHandler.Move)
	item.GET("/comments", commentHandler.List)
	item.POST("/comments", commentHandler.Create)
	item.PATCH("/comments/:comment_id", commentHandler.Update)
	item.DELETE("/comments/:comment_id", commentHandler.Delete)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &testEnv{db: db, router: r, boardService: boardService}
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user and returns their id plus the
// session cookies for subsequent requests.
func (env *testEnv) signupAndLogin(t *testing.T, email string) (string, []*http.Cookie) {
	t.Helper()

	creds := map[string]string{"email": email, "password": "supersecret"}

	w := env.request(t, http.MethodPost, "/api/auth/signup", creds, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	w = env.request(t, http.MethodPost, "/api/auth/login", creds, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	return user.ID, cookies
}

func (env *testEnv) createRoadmap(t *testing.T, cookies []*http.Cookie, title string) dto.RoadmapDTO {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/roadmaps", map[string]string{"title": title}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var roadmap dto.RoadmapDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roadmap))
	return roadmap
}

func TestRoadmapCRUD(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")

	roadmap := env.createRoadmap(t, cookies, "Q3 Plan")
	assert.Equal(t, "Q3 Plan", roadmap.Title)
	assert.False(t, roadmap.IsPublic)

	w := env.request(t, http.MethodGet, "/api/roadmaps", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Roadmaps []dto.RoadmapDTO `json:"roadmaps"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Roadmaps, 1)

	w = env.request(t, http.MethodPatch, "/api/roadmaps/"+roadmap.ID, map[string]string{"title": "Q4 Plan"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/roadmaps/"+roadmap.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	var full dto.RoadmapWithDataDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.Equal(t, "Q4 Plan", full.Roadmap.Title)
	assert.Empty(t, full.Items)

	w = env.request(t, http.MethodDelete, "/api/roadmaps/"+roadmap.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/roadmaps/"+roadmap.ID, nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoadmapAccessControl(t *testing.T) {
	env := setupTestEnv(t)
	_, ownerCookies := env.signupAndLogin(t, "owner@example.com")
	_, otherCookies := env.signupAndLogin(t, "other@example.com")

	roadmap := env.createRoadmap(t, ownerCookies, "Private Plan")

	// Private roadmaps are invisible to other users, not forbidden.
	w := env.request(t, http.MethodGet, "/api/roadmaps/"+roadmap.ID, nil, otherCookies)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Making it public grants read access only.
	w = env.request(t, http.MethodPatch, "/api/roadmaps/"+roadmap.ID, map[string]bool{"is_public": true}, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/roadmaps/"+roadmap.ID, nil, otherCookies)
	assert.Equal(t, http.StatusOK, w.Code)

	// The share token never leaks to non-owners.
	var full dto.RoadmapWithDataDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.Nil(t, full.Roadmap.ShareToken)

	w = env.request(t, http.MethodPatch, "/api/roadmaps/"+roadmap.ID, map[string]string{"title": "Hijacked"}, otherCookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoadmapShareFlow(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Shared Plan")

	w := env.request(t, http.MethodPost, "/api/roadmaps/"+roadmap.ID+"/share", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var shared dto.RoadmapDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shared))
	require.NotNil(t, shared.ShareToken)
	assert.Regexp(t, `^[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}$`, *shared.ShareToken)
	assert.True(t, shared.IsPublic)

	// The share link resolves without any session.
	w = env.request(t, http.MethodGet, "/api/shared/"+*shared.ShareToken, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full dto.RoadmapWithDataDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.Equal(t, "Shared Plan", full.Roadmap.Title)
	assert.Nil(t, full.Roadmap.ShareToken)

	// Revoking kills the link.
	w = env.request(t, http.MethodDelete, "/api/roadmaps/"+roadmap.ID+"/share", nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/shared/"+*shared.ShareToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoadmapDeleteCascades(t *testing.T) {
	env := setupTestEnv(t)
	_, cookies := env.signupAndLogin(t, "owner@example.com")
	roadmap := env.createRoadmap(t, cookies, "Doomed Plan")

	w := env.request(t, http.MethodPost, "/api/roadmaps/"+roadmap.ID+"/objectives", map[string]string{"title": "Growth"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/roadmaps/"+roadmap.ID+"/items", map[string]string{"title": "Ship it"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)
	var item dto.ItemDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = env.request(t, http.MethodPost, "/api/roadmaps/"+roadmap.ID+"/items/"+item.ID+"/comments", map[string]string{"content": "looks good"}, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodDelete, "/api/roadmaps/"+roadmap.ID, nil, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	for model, name := range map[interface{}]string{
		&models.Objective{}: "objectives",
		&models.Item{}:      "items",
		&models.Comment{}:   "comments",
	} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "expected no remaining %s", name)
	}
}
