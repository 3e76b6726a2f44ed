package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactsvc "digitalshop/internal/service/contact"
)

func contactHandler(contact ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactsvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if u := currentUser(c); u != nil {
			req.SubmittedBy = u.ID
		}
		msg, err := contact.Submit(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": msg})
	}
}
