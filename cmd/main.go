package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	_ "github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/docs"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/handler"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/obs"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/repository"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title EZWallet
// @version 1.0
// @description Expense tracking REST API with cookie based access/refresh token authentication

// @host localhost:8080
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("closing database: %v", err)
		}
	}()

	if err := config.ApplyMigrations(db); err != nil {
		log.Fatalf("applying migrations: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("connecting to redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("closing redis: %v", err)
		}
	}()

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("creating s3 service: %v", err)
	}

	codec, err := security.NewTokenCodec(&cfg.JWT)
	if err != nil {
		log.Fatalf("creating token codec: %v", err)
	}
	authorizer := security.NewAuthorizer(codec)

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.Categories)*time.Second)

	authService := service.NewAuthenticationService(userRepo, sessionRepo, codec)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, cacheRepo)
	groupService := service.NewGroupService(groupRepo, userRepo)
	transactionService := service.NewTransactionService(transactionRepo, userRepo, categoryRepo, s3Service,
		time.Duration(cfg.TTL.Export)*time.Second)

	authHandler := handler.NewAuthenticationHandler(authService, authorizer, codec)
	userHandler := handler.NewUserHandler(userService, authorizer)
	categoryHandler := handler.NewCategoryHandler(categoryService, authorizer)
	transactionHandler := handler.NewTransactionHandler(transactionService, groupService, authorizer)
	groupHandler := handler.NewGroupHandler(groupService, authorizer)

	limiter := handler.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go sweepLimiter(ctx, limiter)

	obs.Init()
	if cfg.RateLimit.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(middleware.Recoverer, handler.Logging, obs.Instrument)
	router.Handle("/metrics", obs.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		setupAuthRoutes(r, authHandler, limiter)
		setupUserRoutes(r, userHandler)
		setupCategoryRoutes(r, categoryHandler)
		setupTransactionRoutes(r, transactionHandler)
		setupGroupRoutes(r, groupHandler)
	})

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, limiter *handler.IPRateLimiter) {
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", h.Register)
		r.Post("/admin", h.RegisterAdmin)
		r.Post("/login", h.Login)
	})
	r.Get("/logout", h.Logout)
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler) {
	r.Get("/users", h.ListUsers)
	r.Get("/users/{username}", h.GetUser)
	r.Delete("/users", h.DeleteUser)
}

func setupCategoryRoutes(r chi.Router, h *handler.CategoryHandler) {
	r.Post("/categories", h.CreateCategory)
	r.Get("/categories", h.ListCategories)
	r.Patch("/categories/{type}", h.UpdateCategory)
	r.Delete("/categories", h.DeleteCategories)
}

func setupTransactionRoutes(r chi.Router, h *handler.TransactionHandler) {
	r.Get("/transactions", h.ListAll)
	r.Delete("/transactions", h.DeleteTransactions)

	r.Post("/users/{username}/transactions", h.CreateTransaction)
	r.Get("/users/{username}/transactions", h.ListByUser)
	r.Delete("/users/{username}/transactions", h.DeleteTransaction)
	r.Get("/users/{username}/transactions/category/{category}", h.ListByUserAndCategory)
	r.Post("/users/{username}/transactions/export", h.ExportStatement)

	r.Get("/groups/{name}/transactions", h.ListByGroup)
	r.Get("/groups/{name}/transactions/category/{category}", h.ListByGroupAndCategory)
}

func setupGroupRoutes(r chi.Router, h *handler.GroupHandler) {
	r.Post("/groups", h.CreateGroup)
	r.Get("/groups", h.ListGroups)
	r.Delete("/groups", h.DeleteGroup)

	r.Get("/groups/{name}", h.GetGroup)
	r.Patch("/groups/{name}/add", h.AddMembers)
	r.Patch("/groups/{name}/insert", h.InsertMembers)
	r.Patch("/groups/{name}/remove", h.RemoveMembers)
	r.Patch("/groups/{name}/pull", h.PullMembers)
}

func sweepLimiter(ctx context.Context, limiter *handler.IPRateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.Sweep(now)
		}
	}
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("server listening on " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("received %v, shutting down", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("shutting down server: %v", err)
	} else {
		log.Println("server stopped")
	}
}
