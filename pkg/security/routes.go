package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/l4greenl/it-inventory/internal/rate_limiter"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/roles"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	repo        *repository.Repository
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(r *repository.Repository) *LoginHandler {
	return &LoginHandler{
		repo:        r,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute), // 10 attempts per 5 minutes
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", l.Login)
	router.GET("/logout", l.Logout)
	router.GET("/me", l.Me)
}

func (l *LoginHandler) Login(c *gin.Context) {
	clientIP := clientAddress(c)

	if !l.rateLimiter.IsAllowed(clientIP) {
		remaining := l.rateLimiter.GetRemainingRequests(clientIP)
		c.Header("X-RateLimit-Limit", "10")
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", time.Now().Add(5*time.Minute).Format(time.RFC3339))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many login attempts, try again later",
			"remaining": remaining,
			"reset_at":  time.Now().Add(5 * time.Minute).Format(time.RFC3339),
		})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := AuthenticateUser(req.Username, req.Password, l.repo)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	// Only administrators get a session. The old frontend merely hid
	// buttons from non-admins; the gate belongs on the server.
	if roles.Role(user.Role) != roles.Admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Login is permitted for administrators only"})
		return
	}

	if err := SaveSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"username": user.Username,
		"role":     user.Role,
	})
}

func (l *LoginHandler) Logout(c *gin.Context) {
	if err := ClearSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports the session state so a reloaded client can restore its user.
func (l *LoginHandler) Me(c *gin.Context) {
	username, role, ok := SessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      username,
		"role":          role,
	})
}

// clientAddress picks the best client identifier for rate limiting,
// preferring proxy headers over the socket address.
func clientAddress(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	if isPrivateIP(clientIP) {
		// Private addresses collapse behind NAT; mix in the user agent.
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "192.168.", "127.", "169.254.", "::1", "fc00::", "fe80::",
		"172.16.", "172.17.", "172.18.", "172.19.", "172.20.", "172.21.",
		"172.22.", "172.23.", "172.24.", "172.25.", "172.26.", "172.27.",
		"172.28.", "172.29.", "172.30.", "172.31.",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
