package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/domain"
)

func adminStatsHandler(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := admin.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

func adminOrdersHandler(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := admin.RecentOrders(c.Request.Context(), queryLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "orders unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func adminUsersHandler(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := admin.RecentUsers(c.Request.Context(), queryLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "users unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

func adminMessagesHandler(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := admin.RecentMessages(c.Request.Context(), queryLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "messages unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

func adminSalesHandler(admin AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		series, err := admin.MonthlySales(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "sales unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sales": series})
	}
}

func adminUpsertProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p domain.Product
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		saved, err := catalog.Upsert(c.Request.Context(), p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}
