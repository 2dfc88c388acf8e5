package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-cart/internal/domain"
	cartsvc "storefront-cart/internal/service/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		// Quantity defaults to 1 when omitted.
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		view, err := svc.AddItem(c.Request.Context(), sessionID(c), req.ProductID, quantity)
		if err != nil {
			switch {
			case errors.Is(err, cartsvc.ErrQuantityNotPositive):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
			}
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func updateQuantityHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		view, err := svc.UpdateQuantity(c.Request.Context(), sessionID(c), c.Param("productId"), req.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func removeItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.RemoveItem(c.Request.Context(), sessionID(c), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Clear(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
