package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/roadmap-planner-api/internal/config"
	"github.com/yukikurage/roadmap-planner-api/internal/constants"
	"github.com/yukikurage/roadmap-planner-api/internal/database"
	"github.com/yukikurage/roadmap-planner-api/internal/handlers"
	"github.com/yukikurage/roadmap-planner-api/internal/middleware"
	"github.com/yukikurage/roadmap-planner-api/internal/repository"
	"github.com/yukikurage/roadmap-planner-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	roadmapRepo := repository.NewRoadmapRepository(db)
	groupingRepo := repository.NewGroupingRepository(db)
	itemRepo := repository.NewItemRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	boardService := services.NewBoardService(roadmapRepo, itemRepo)
	authService := services.NewAuthService(userRepo)
	roadmapService := services.NewRoadmapService(roadmapRepo, boardService)
	groupingService := services.NewGroupingService(groupingRepo, boardService)
	itemService := services.NewItemService(itemRepo, groupingRepo, boardService)
	importService := services.NewImportService(itemRepo, groupingRepo, boardService)
	commentService := services.NewCommentService(commentRepo, itemRepo)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService)
	groupingHandler := handlers.NewGroupingHandler(groupingService)
	itemHandler := handlers.NewItemHandler(itemService, boardService, aiService)
	boardHandler := handlers.NewBoardHandler(boardService)
	importHandler := handlers.NewImportHandler(importService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Roadmap Planner API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Share links resolve without authentication
		api.GET("/shared/:token", roadmapHandler.GetShared)

		// Roadmap routes (protected)
		roadmaps := api.Group("/roadmaps")
		roadmaps.Use(middleware.RequireAuth())
		{
			roadmaps.GET("", roadmapHandler.List)
			roadmaps.POST("", roadmapHandler.Create)

			scoped := roadmaps.Group("/:id")
			scoped.Use(middleware.RequireRoadmapAccess())
			{
				scoped.GET("", roadmapHandler.Get)
				scoped.PATCH("", middleware.RequireRoadmapOwner(), roadmapHandler.Update)
				scoped.DELETE("", middleware.RequireRoadmapOwner(), roadmapHandler.Delete)
				scoped.POST("/share", middleware.RequireRoadmapOwner(), roadmapHandler.Share)
				scoped.DELETE("/share", middleware.RequireRoadmapOwner(), roadmapHandler.Unshare)

				scoped.GET("/board", boardHandler.Get)

				registerGroupingRoutes(scoped, "/objectives", repository.KindObjective, groupingHandler)
				registerGroupingRoutes(scoped, "/modules", repository.KindModule, groupingHandler)
				registerGroupingRoutes(scoped, "/teams", repository.KindTeam, groupingHandler)

				scoped.GET("/items", itemHandler.List)
				scoped.POST("/items", itemHandler.Create)
				scoped.POST("/items/generate", itemHandler.Generate)
				scoped.POST("/import/preview", importHandler.Preview)
				scoped.POST("/import", importHandler.Commit)

				item := scoped.Group("/items/:item_id")
				item.Use(middleware.RequireItemInRoadmap())
				{
					item.GET("", itemHandler.Get)
					item.PATCH("", itemHandler.Update)
					item.DELETE("", itemHandler.Delete)
					item.PATCH("/status", itemHandler.UpdateStatus)
					item.POST("/move", itemHandler.Move)

					item.GET("/comments", commentHandler.List)
					item.POST("/comments", commentHandler.Create)
					item.PATCH("/comments/:comment_id", commentHandler.Update)
					item.DELETE("/comments/:comment_id", commentHandler.Delete)
				}
			}
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func registerGroupingRoutes(group *gin.RouterGroup, path string, kind repository.GroupingKind, h *handlers.GroupingHandler) {
	group.GET(path, h.List(kind))
	group.POST(path, h.Create(kind))
	group.PATCH(path+"/:grouping_id", h.Update(kind))
	group.DELETE(path+"/:grouping_id", h.Delete(kind))
}
