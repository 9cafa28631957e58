package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Saran-k-ece/Forensync/config"
	"github.com/Saran-k-ece/Forensync/middleware"
)

type AuthController struct {
	Cfg config.AppConfig
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
// Single configured administrator credential pair; a successful login is
// issued a signed, expiring session token.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(payload.Username), []byte(ac.Cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(payload.Password), []byte(ac.Cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresAt, err := middleware.SignSession(ac.Cfg.SessionSecret, payload.Username, ac.Cfg.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     token,
		"username":  payload.Username,
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}
