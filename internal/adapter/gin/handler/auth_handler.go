package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"task-manager-service/internal/usecase/auth"
	pkgerrors "task-manager-service/pkg/errors"
)

// CookieConfig controls how the session cookie is issued. For cross-site
// deployments (separate frontend host) the cookie must be Secure with
// SameSite=None; same-site development uses Lax.
type CookieConfig struct {
	Name      string
	TTL       time.Duration
	CrossSite bool
}

func (cc CookieConfig) build(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     cc.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if cc.CrossSite {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// AuthHandler handles HTTP requests for signup, login, logout and the
// current-user probe.
type AuthHandler struct {
	uc          auth.Usecase
	cookie      CookieConfig
	environment string
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(uc auth.Usecase, cookie CookieConfig, environment string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:          uc,
		cookie:      cookie,
		environment: environment,
		log:         log,
	}
}

// SignupRequest represents the HTTP request body for registering a user.
type SignupRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// LoginRequest represents the HTTP request body for logging in.
type LoginRequest struct {
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// UserResponse represents the HTTP response for user profile data.
type UserResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

func toUserResponse(p auth.UserProfile) UserResponse {
	return UserResponse{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		EmailAddress: p.EmailAddress,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid signup request body", zap.Error(err))
		respondError(c, pkgerrors.NewValidationError("", "invalid request body"))
		return
	}

	resp, err := h.uc.Signup(c.Request.Context(), auth.SignupRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.SessionID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    toUserResponse(resp.User),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request body", zap.Error(err))
		respondError(c, pkgerrors.NewValidationError("", "invalid request body"))
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    toUserResponse(resp.User),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cookie.Name)

	if err := h.uc.Logout(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cookie.Name)

	profile, err := h.uc.CurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"isAuthenticated": true,
		"user":            toUserResponse(*profile),
	})
}

// Health handles GET /api/health
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Task Manager API is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	http.SetCookie(c.Writer, h.cookie.build(sessionID, int(h.cookie.TTL.Seconds())))
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, h.cookie.build("", -1))
}
