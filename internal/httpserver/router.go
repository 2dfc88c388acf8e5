package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront-cart/internal/repository/catalog"
	cartsvc "storefront-cart/internal/service/cart"
)

// Deps carries the wired services the routes need.
type Deps struct {
	CartSvc *cartsvc.Service
	Catalog catalog.Repository
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/sessions", createSessionHandler)

	router.GET("/products", listProductsHandler(deps.Catalog))
	router.GET("/products/:id", getProductHandler(deps.Catalog))
	router.GET("/categories", listCategoriesHandler(deps.Catalog))

	carts := router.Group("/cart", sessionMiddleware())
	carts.GET("", getCartHandler(deps.CartSvc))
	carts.DELETE("", clearCartHandler(deps.CartSvc))
	carts.POST("/items", addItemHandler(deps.CartSvc))
	carts.PATCH("/items/:productId", updateQuantityHandler(deps.CartSvc))
	carts.DELETE("/items/:productId", removeItemHandler(deps.CartSvc))

	return router
}

// corsMiddleware opens the API to browser storefronts; the session header
// must be allowed explicitly.
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, sessionHeader)
	return cors.New(cfg)
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 400 {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	}
}
