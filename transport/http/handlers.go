package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/service"
)

// AuthHandlers contains HTTP handlers for the authenticator lifecycle
type AuthHandlers struct {
	host *service.HostService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(host *service.HostService) *AuthHandlers {
	return &AuthHandlers{host: host}
}

// Describe returns the static authenticator description
func (h *AuthHandlers) Describe(c *gin.Context) {
	a := h.host.Authenticator()
	c.JSON(http.StatusOK, gin.H{
		"name":                          a.GetName(),
		"style":                         a.GetStyle(),
		"onboarding_link":               a.GetOnboardingLink(),
		"should_render":                 a.ShouldRender(),
		"should_auto_login":             a.ShouldAutoLogin(),
		"should_request_account_name":   a.ShouldRequestAccountName(),
		"requires_get_key_confirmation": a.RequiresGetKeyConfirmation(),
		"is_mobile":                     a.IsMobile(),
		"chains":                        a.Chains(),
	})
}

// Status returns the loading/error state
func (h *AuthHandlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.host.Status())
}

// Init runs an initialization attempt and reports the resulting state
func (h *AuthHandlers) Init(c *gin.Context) {
	h.host.Authenticator().Initialize(c.Request.Context())
	c.JSON(http.StatusOK, h.host.Status())
}

// Reset restarts initialization in the background
func (h *AuthHandlers) Reset(c *gin.Context) {
	h.host.Authenticator().Reset(c.Request.Context())
	c.JSON(http.StatusAccepted, h.host.Status())
}

// Login logs in on every chain and returns a session token
func (h *AuthHandlers) Login(c *gin.Context) {
	token, session, err := h.host.Login(c.Request.Context())
	if err != nil {
		if core.IsType(err, core.ErrorTypeLogin) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":          "Unable to login",
				"detail":         err.Error(),
				"onboarding_url": h.host.Authenticator().RecoveryURL(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   session.ExpiresAt,
		"accounts":     session.Accounts,
	})
}

// Logout logs the bridge out and revokes the session
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid authorization header"})
		return
	}

	err := h.host.Logout(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	case errors.Is(err, core.ErrInvalidToken), errors.Is(err, core.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
	case core.IsType(err, core.ErrorTypeLogout):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Wallet logout failed", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
	}
}

// Me returns the session behind the bearer token
func (h *AuthHandlers) Me(c *gin.Context) {
	value, exists := c.Get(sessionKey)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not found in context"})
		return
	}
	session := value.(*core.Session)

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"app_name":   session.AppName,
		"accounts":   session.Accounts,
		"expires_at": session.ExpiresAt,
	})
}
