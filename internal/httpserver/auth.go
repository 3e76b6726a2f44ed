package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"digitalshop/internal/domain"
	usersvc "digitalshop/internal/service/user"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
}

func signupHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := users.Signup(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, usersvc.ErrEmailTaken) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Log the fresh account in right away, mirroring the storefront
		// signup flow.
		_, access, refresh, err := users.Login(c.Request.Context(), u.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account created but login failed"})
			return
		}
		c.JSON(http.StatusCreated, authResponse{
			User:         u,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    users.AccessTTLSeconds(),
		})
	}
}

func loginHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, access, refresh, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, usersvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusOK, authResponse{
			User:         u,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    users.AccessTTLSeconds(),
		})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
	}
}

type profileRequest struct {
	FullName *string `json:"fullName"`
	PhotoURL *string `json:"photoUrl"`
}

func updateProfileHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := users.UpdateProfile(c.Request.Context(), currentUser(c).ID, req.FullName, req.PhotoURL)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}
