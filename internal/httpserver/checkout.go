package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/checkout"
)

func checkoutHandler(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.BillingForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		order, err := flow.Submit(c.Request.Context(), currentUser(c).ID, form, currentStore(c))
		if err != nil {
			var vErr *checkout.ValidationError
			var sErr *checkout.SubmissionError
			switch {
			case errors.As(err, &vErr):
				c.JSON(http.StatusBadRequest, gin.H{"field": vErr.Field, "error": vErr.Message})
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			case errors.Is(err, checkout.ErrAuthRequired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			case errors.As(err, &sErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to process order. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

func listOrdersHandler(orders OrderLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListByUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
