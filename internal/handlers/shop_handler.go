package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"moto-shop/internal/cache"
	"moto-shop/internal/shop"
)

// ShopHandler expone las operaciones de catálogo, compra y analítica
type ShopHandler struct {
	svc   *shop.Service
	cache *cache.Cache
}

func NewShopHandler(svc *shop.Service, c *cache.Cache) *ShopHandler {
	return &ShopHandler{svc: svc, cache: c}
}

type buyRequest struct {
	ID string `json:"id"`
}

// Buy compra una unidad de un producto. El cuerpo de la respuesta siempre
// lleva la forma {success, message}, también en los fallos.
func (h *ShopHandler) Buy(c *gin.Context) {
	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, shop.Result{Success: false, Message: "Product ID is required!"})
		return
	}

	result := h.svc.Purchase(c.Request.Context(), req.ID)
	if !result.Success {
		c.JSON(statusForFailure(result), result)
		return
	}

	// La compra cambia stock y órdenes: fuera listados y agregados cacheados
	h.cache.DeleteByPrefix("products:")
	h.cache.DeleteByPrefix("reports:")

	c.JSON(http.StatusOK, result)
}

// Stats devuelve los totales del panel
func (h *ShopHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Products lista el catálogo (con caché)
func (h *ShopHandler) Products(c *gin.Context) {
	const cacheKey = "products:list"

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products := h.svc.ListProducts(c.Request.Context())
	h.cache.Set(cacheKey, products, 2*time.Minute)
	c.JSON(http.StatusOK, products)
}

func (h *ShopHandler) Orders(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListOrders(c.Request.Context()))
}

// Init regenera los datos de demostración
func (h *ShopHandler) Init(c *gin.Context) {
	result, err := h.svc.ResetDemoData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.cache.Clear()

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"products_count": result.ProductCount,
		"users_count":    result.UserCount,
	})
}

// VectorSearch devuelve el top 5 por similitud coseno contra un vector
// de consulta aleatorio. Sin caché: cada llamada genera una query nueva.
func (h *ShopHandler) VectorSearch(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RankBySimilarity(c.Request.Context()))
}

// Aggregation devuelve las estadísticas por marca (con caché)
func (h *ShopHandler) Aggregation(c *gin.Context) {
	const cacheKey = "reports:brands"

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	results := h.svc.BrandStatistics(c.Request.Context())
	h.cache.Set(cacheKey, results, 2*time.Minute)
	c.JSON(http.StatusOK, results)
}

func (h *ShopHandler) MonthlyStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.OrderTimeStatistics(c.Request.Context()))
}

func (h *ShopHandler) TopSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.TopSellers(c.Request.Context()))
}

func (h *ShopHandler) ShardingSimulation(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ShardSimulation(c.Request.Context()))
}

// TestPerformance ejecuta el benchmark de índices. Sólo toca índices, nunca
// documentos: los listados cacheados siguen siendo válidos.
func (h *ShopHandler) TestPerformance(c *gin.Context) {
	report, err := h.svc.IndexBenchmark(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
