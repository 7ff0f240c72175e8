package routes

import (
	"github.com/gin-gonic/gin"

	"moto-shop/internal/cache"
	"moto-shop/internal/handlers"
	"moto-shop/internal/shop"
)

func RegisterRoutes(router *gin.Engine, svc *shop.Service, c *cache.Cache) {
	shopHandler := handlers.NewShopHandler(svc, c)
	userHandler := handlers.NewUserHandler(svc)

	api := router.Group("/api")
	{
		api.GET("/stats", shopHandler.Stats)
		api.GET("/products", shopHandler.Products)
		api.GET("/orders", shopHandler.Orders)
		api.POST("/init", shopHandler.Init)
		api.POST("/buy", shopHandler.Buy)

		api.GET("/vector-search", shopHandler.VectorSearch)
		api.GET("/aggregation", shopHandler.Aggregation)
		api.GET("/monthly-stats", shopHandler.MonthlyStats)
		api.GET("/top-sales", shopHandler.TopSales)
		api.GET("/sharding-simulation", shopHandler.ShardingSimulation)
		api.GET("/test-performance", shopHandler.TestPerformance)

		api.GET("/users", userHandler.List)
		api.POST("/users", userHandler.Create)
		api.PUT("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Delete)
	}
}
