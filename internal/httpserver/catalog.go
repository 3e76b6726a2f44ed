package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/domain"
	productrepo "digitalshop/internal/repository/product"
)

func listProductsHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		page, err := catalog.List(c.Request.Context(), productrepo.ListParams{
			Category: c.Query("category"),
			Query:    c.Query("q"),
			Sort:     c.Query("sort"),
			Limit:    limit,
			Cursor:   c.Query("cursor"),
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func getProductHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func listCategoriesHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := catalog.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "categories unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": names})
	}
}
