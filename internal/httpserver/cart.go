package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/cart"
	"digitalshop/internal/domain"
)

type cartResponse struct {
	SessionID       string          `json:"sessionId,omitempty"`
	Items           []cart.LineItem `json:"items"`
	TotalItems      int             `json:"totalItems"`
	TotalPriceCents int64           `json:"totalPriceCents"`
}

func cartSnapshot(store *cart.Store) cartResponse {
	return cartResponse{
		Items:           store.Items(),
		TotalItems:      store.TotalItems(),
		TotalPriceCents: store.TotalPriceCents(),
	}
}

func beginCartSessionHandler(carts *cart.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store := carts.Begin(c.Request.Context())
		resp := cartSnapshot(store)
		resp.SessionID = id
		c.JSON(http.StatusCreated, resp)
	}
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartSnapshot(currentStore(c)))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		p, err := catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		store := currentStore(c)
		store.AddItem(*p, req.Quantity)
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func setCartQuantityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		store := currentStore(c)
		store.SetQuantity(c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := currentStore(c)
		store.RemoveItem(c.Param("productId"))
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := currentStore(c)
		store.Clear()
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}
