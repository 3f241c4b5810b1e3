package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Authenticator defines the OTP operations needed by the handler.
type Authenticator interface {
	RequestOTP(email string) (time.Duration, error)
	VerifyOTP(email, code string) (string, error)
}

// AuthHandler handles OTP authentication HTTP requests.
type AuthHandler struct {
	svc Authenticator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc Authenticator) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type requestOTPRequest struct {
	Email string `binding:"required,email" json:"email"`
}

// RequestOTP handles POST /api/auth/request-otp.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	ttl, err := h.svc.RequestOTP(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "OTP generated",
		"expires_in_minutes": int(ttl.Minutes()),
	})
}

type verifyOTPRequest struct {
	Email string `binding:"required,email" json:"email"`
	OTP   string `binding:"required"       json:"otp"`
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	token, err := h.svc.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
	})
}
