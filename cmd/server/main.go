package main

import (
	"collaborative-docs-backend/internal/ai"
	"collaborative-docs-backend/internal/config"
	"collaborative-docs-backend/internal/db"
	"collaborative-docs-backend/internal/email"
	"collaborative-docs-backend/internal/middleware"
	"collaborative-docs-backend/internal/room"
	"collaborative-docs-backend/internal/user"
	"collaborative-docs-backend/internal/verify"
	"collaborative-docs-backend/internal/worker"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	db.ConnectDb()
	defer db.CloseDb()

	// Migrate database schema
	db.Migrate()

	// Seed database with initial data (for development)
	if config.AppConfig.Environment == "development" {
		db.SeedData()
	}

	// Verification code store (Redis, TTL-bounded)
	codeStore, err := verify.NewStore(config.AppConfig.RedisAddress)
	if err != nil {
		log.Fatalf("error connecting to redis %v", err)
	}

	// Background workers for mail delivery
	pool := worker.NewPool(4)
	defer pool.Shutdown()

	mailer := email.NewService(email.Config{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUser,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.SMTPFrom,
	})

	// Initialize repositories
	userRepo := user.NewRepository(db.AppDb)
	roomRepo := room.NewRepository(db.AppDb)
	// Initialize services
	userService := user.NewService(userRepo)
	roomService := room.NewService(roomRepo)
	aiClient := ai.NewClient(
		config.AppConfig.OpenAIBaseURL,
		config.AppConfig.OpenAIKey,
		config.AppConfig.OpenAIModel,
	)
	// Initialize handlers
	userHandler := user.NewHandler(userService, codeStore, mailer, pool)
	roomHandler := room.NewHandler(roomService)
	aiHandler := ai.NewHandler(aiClient)

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// custom binding validators
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("permlevel", room.ValidatePermissionLevel)
	}

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}

	if config.AppConfig.Environment == "development" {
		// Allow all origins in development
		corsConfig.AllowAllOrigins = true
	} else {
		// Restrict origins in production
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Account routes
	router.POST("/auth/send-code", userHandler.SendCode)
	router.POST("/auth/register", userHandler.Register)
	router.POST("/auth/reset-password", userHandler.ResetPassword)
	router.POST("/auth/login", userHandler.Login)

	// Content routes
	router.POST("/content/createdoc", roomHandler.CreateDoc)
	router.GET("/content/getcontent", roomHandler.GetContent)
	router.POST("/content/update", roomHandler.UpdateContent)

	// Main page routes
	router.GET("/rooms", roomHandler.ListRooms)
	router.GET("/main/edit_permission", roomHandler.EditPermission)
	router.GET("/main/read_permission", roomHandler.ReadPermission)

	// Document management routes
	router.GET("/mydocs/getusers", userHandler.GetUsers)
	router.GET("/mydocs/getdocs", roomHandler.GetDocs)
	router.POST("/mydocs/update_visibility", roomHandler.UpdateVisibility)
	router.POST("/mydocs/add_users", roomHandler.AddUsers)
	router.POST("/mydocs/remove_user", roomHandler.RemoveUser)
	router.POST("/mydocs/change_permission", roomHandler.ChangePermission)
	router.POST("/mydocs/rename_room", roomHandler.RenameRoom)
	router.POST("/mydocs/delete_room", roomHandler.DeleteRoom)

	// Chat relay
	router.POST("/ai/chat", aiHandler.Chat)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
