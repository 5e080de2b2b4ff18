package main

import (
	"log"
	"os"

	_ "consite/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"consite/internal/auth"
	"consite/internal/cache"
	"consite/internal/config"
	"consite/internal/db"
	"consite/internal/handler"
	"consite/internal/model"
	"consite/internal/repository"
	"consite/internal/router"
	"consite/internal/service"
)

// @title Construction Procurement API
// @version 1.0
// @description Construction-site procurement API with role-based authorization, order workflow and JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.AuthSession{},
			&model.OrderItem{},
			&model.OrderDetails{},
			&model.Item{},
			&model.Site{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Site{},
		&model.Item{},
		&model.OrderDetails{},
		&model.OrderItem{},
		&model.AuthSession{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	reg := repository.NewRegistry(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(reg.Users, reg.Sessions, txManager, jwtService, tokenStore)
	userService := service.NewUserService(reg.Users)
	siteService := service.NewSiteService(reg.Sites, reg.Users, txManager)
	itemService := service.NewItemService(reg.Items, cacheClient)
	orderService := service.NewOrderService(reg.Orders, reg.OrderItems, reg.Items, reg.Users, reg.Sites, txManager)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	siteHandler := handler.NewSiteHandler(siteService)
	itemHandler := handler.NewItemHandler(itemService)
	orderHandler := handler.NewOrderHandler(orderService)

	router.Register(e, cfg, authService, authHandler, userHandler, siteHandler, itemHandler, orderHandler)

	log.Printf("starting server on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
