package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moto-shop/internal/cache"
	"moto-shop/internal/config"
	"moto-shop/internal/database"
	"moto-shop/internal/logger"
	"moto-shop/internal/repository"
	"moto-shop/internal/routes"
	"moto-shop/internal/shop"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.NewWithDefaults(cfg.Env)
	defer log.Sync()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("mongo connection failed", zap.String("uri", cfg.MongoURI), zap.Error(err))
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDB)
	productRepo := repository.NewProductRepository(db.Collection("products"))
	orderRepo := repository.NewOrderRepository(db.Collection("orders"))
	userRepo := repository.NewUserRepository(db.Collection("users"))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc := shop.New(productRepo, orderRepo, userRepo, rng, log)

	// Paso de esquema explícito, desacoplado de las rutas
	migration := svc.MigrateAddresses(context.Background())
	if !migration.Success {
		log.Fatal("schema upgrade failed", zap.String("detail", migration.Message))
	}
	log.Info("schema upgrade done", zap.Int64("migrated_users", migration.Migrated))

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, svc, cache.New(5*time.Minute))

	log.Info("🚀 Server running", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
