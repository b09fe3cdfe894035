package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"plantstore/internal/config"
	"plantstore/internal/handler"
	"plantstore/internal/repository"
	"plantstore/internal/service"
	"plantstore/pkg/token"
)

type Server struct {
	httpServer *http.Server
	mongo      *mongo.Client
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	imageRepo, err := repository.NewImageRepository(&cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create image repository: %w", err)
	}
	plantRepo := repository.NewPlantRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	plantService := service.NewPlantService(plantRepo, imageRepo, log)
	authService := service.NewAuthService(userRepo, tokens, &cfg.Auth, log)

	plantHandler := handler.NewPlantHandler(plantService, &cfg.App, log)
	userHandler := handler.NewUserHandler(authService, log)
	adminOnly := handler.AdminAuth(tokens, log)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := router.Group("/api")

	plant := api.Group("/plant")
	{
		plant.POST("/add", adminOnly, plantHandler.AddPlant)
		plant.PUT("/update/:id", adminOnly, plantHandler.UpdatePlant)
		plant.DELETE("/delete/:id", adminOnly, plantHandler.RemovePlant)
		plant.GET("/single/:id", plantHandler.SinglePlant)
		plant.GET("/list", plantHandler.ListPlants)
		plant.GET("/manage", adminOnly, plantHandler.ManagePlants)
	}

	user := api.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/login", userHandler.Login)
		user.POST("/admin/login", userHandler.AdminLogin)
		user.GET("/all", adminOnly, userHandler.AllUsers)
		user.GET("/:id", adminOnly, userHandler.UserByID)
	}

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:        router,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		mongo: mongoClient,
		cfg:   cfg,
		log:   log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server, nil
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return s.mongo.Disconnect(ctx)
}
