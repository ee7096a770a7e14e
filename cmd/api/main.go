package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizlive-api/internal/config"
	"github.com/yourusername/quizlive-api/internal/handler"
	"github.com/yourusername/quizlive-api/internal/middleware"
	pgRepo "github.com/yourusername/quizlive-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizlive-api/internal/repository/redis"
	"github.com/yourusername/quizlive-api/internal/service"
	ws "github.com/yourusername/quizlive-api/internal/websocket"
	"github.com/yourusername/quizlive-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Если админ-пароль не задан, генерируем случайный и печатаем его в лог,
	// чтобы локальный запуск работал без настройки
	adminPassword := cfg.Admin.Password
	if adminPassword == "" {
		adminPassword = generatePassword()
		log.Println("---------------------------------------------------")
		log.Printf("ADMIN PASSWORD: %s", adminPassword)
		log.Println("---------------------------------------------------")
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	sessionRepo := pgRepo.NewSessionRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем presence-хаб
	hub := ws.NewHub()

	clientConfig := ws.DefaultClientConfig()
	if cfg.WebSocket.Buffers.ClientSendBuffer > 0 {
		clientConfig.BufferSize = cfg.WebSocket.Buffers.ClientSendBuffer
	}
	if cfg.WebSocket.Ping.Interval > 0 {
		clientConfig.PingInterval = time.Duration(cfg.WebSocket.Ping.Interval) * time.Second
	}
	if cfg.WebSocket.Limits.PongWait > 0 {
		clientConfig.PongWait = time.Duration(cfg.WebSocket.Limits.PongWait) * time.Second
	}
	if cfg.WebSocket.Limits.WriteWait > 0 {
		clientConfig.WriteWait = time.Duration(cfg.WebSocket.Limits.WriteWait) * time.Second
	}
	if cfg.WebSocket.Limits.MaxMessageSize > 0 {
		clientConfig.MaxMessageSize = int64(cfg.WebSocket.Limits.MaxMessageSize)
	}

	// Инициализируем сервисы
	quizService := service.NewQuizService(quizRepo, questionRepo, cacheRepo)
	resultService := service.NewResultService(quizRepo, questionRepo, sessionRepo, cacheRepo)

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(quizService, resultService)
	adminHandler := handler.NewAdminHandler(quizService, resultService)
	wsHandler := handler.NewWSHandler(hub, clientConfig)

	// Инициализируем middleware
	adminMiddleware := middleware.NewAdminMiddleware(adminPassword)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS. Заголовок X-Admin-Password нужен и на публичных
	// маршрутах: по нему листинг отдает скрытые викторины администратору.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AdminPasswordHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Статический фронтенд
	router.StaticFS("/app", http.Dir("./static"))

	// Настраиваем маршруты API
	api := router.Group("/api")
	api.Use(adminMiddleware.DetectAdmin())
	{
		api.GET("/quizzes", quizHandler.ListQuizzes)
		api.POST("/join", quizHandler.Join)
		api.POST("/submit", quizHandler.Submit)

		quizByID := api.Group("/quizzes/:id")
		quizByID.Use(middleware.ExtractUintParam("id", "quizID"))
		{
			quizByID.GET("", quizHandler.GetQuiz)
		}

		questionsByQuiz := api.Group("/quiz/:id/questions")
		questionsByQuiz.Use(middleware.ExtractUintParam("id", "quizID"))
		{
			questionsByQuiz.GET("", quizHandler.GetQuizQuestions)
		}

		leaderboard := api.Group("/leaderboard/:quizId")
		leaderboard.Use(middleware.ExtractUintParam("quizId", "quizID"))
		{
			leaderboard.GET("", quizHandler.GetLeaderboard)
		}

		// Админские маршруты
		admin := api.Group("/admin")
		admin.Use(adminMiddleware.RequireAdmin())
		{
			admin.POST("/login", adminHandler.Login)

			admin.POST("/quizzes", adminHandler.CreateQuiz)
			adminQuiz := admin.Group("/quizzes/:id")
			adminQuiz.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				adminQuiz.PUT("", adminHandler.UpdateQuiz)
				adminQuiz.DELETE("", adminHandler.DeleteQuiz)
				adminQuiz.POST("/clear", adminHandler.ClearQuiz)
				adminQuiz.GET("/sessions", adminHandler.ListQuizSessions)
			}

			admin.GET("/questions", adminHandler.ListQuestions)
			admin.POST("/questions", adminHandler.CreateQuestion)
			admin.POST("/questions/bulk", adminHandler.BulkImportQuestions)
			adminQuestion := admin.Group("/questions/:id")
			adminQuestion.Use(middleware.ExtractUintParam("id", "questionID"))
			{
				adminQuestion.PUT("", adminHandler.UpdateQuestion)
			}

			adminSession := admin.Group("/sessions/:id")
			adminSession.Use(middleware.ExtractUintParam("id", "sessionID"))
			{
				adminSession.DELETE("", adminHandler.DeleteSession)
			}
		}
	}

	// WebSocket маршрут: живой счетчик зрителей викторины
	router.GET("/ws", wsHandler.HandleConnection)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Закрываем presence-подключения; счетчики живут только в памяти
	hub.Shutdown()

	// Graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}

// generatePassword возвращает короткий случайный hex-секрет
func generatePassword() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		log.Printf("Failed to generate admin password: %v", err)
		os.Exit(1)
	}
	return hex.EncodeToString(buf)
}
