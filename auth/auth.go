package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cafe-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const AdminRole = "admin"

type Options struct {
	APIKey    string
	JWTSecret string // empty disables bearer tokens
	TokenTTL  time.Duration
	// Legacy answers rejected requests with 200 instead of 401.
	Legacy bool
	Cost   int // bcrypt cost, defaults to bcrypt.DefaultCost
}

// Authorizer grants the "authorized for delete" capability, either through the
// shared API key or through a short-lived admin token issued for it.
type Authorizer struct {
	keyHash []byte
	secret  []byte
	ttl     time.Duration
	legacy  bool
}

func NewAuthorizer(opts Options) (*Authorizer, error) {
	if opts.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.APIKey), cost)
	if err != nil {
		return nil, err
	}
	return &Authorizer{
		keyHash: hash,
		secret:  []byte(opts.JWTSecret),
		ttl:     opts.TokenTTL,
		legacy:  opts.Legacy,
	}, nil
}

func (a *Authorizer) CheckAPIKey(key string) bool {
	if key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.keyHash, []byte(key)) == nil
}

func (a *Authorizer) TokensEnabled() bool { return len(a.secret) > 0 }

// Allowed reports whether the request carries a valid apiKey query parameter
// or an admin bearer token.
func (a *Authorizer) Allowed(c *gin.Context) bool {
	if a.CheckAPIKey(c.Query("apiKey")) {
		return true
	}

	header := c.GetHeader("Authorization")
	if !a.TokensEnabled() || !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	role, err := utils.RoleFromToken(a.secret, strings.TrimPrefix(header, "Bearer "))
	return err == nil && role == AdminRole
}

func (a *Authorizer) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Allowed(c) {
			status := http.StatusUnauthorized
			if a.legacy {
				status = http.StatusOK
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "not authorized"})
			return
		}
		c.Next()
	}
}

// IssueToken exchanges the API key for an admin token.
func (a *Authorizer) IssueToken(c *gin.Context) {
	type Request struct {
		APIKey string `form:"api_key" binding:"required"`
	}

	if !a.TokensEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token issuance is disabled"})
		return
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	if !a.CheckAPIKey(req.APIKey) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
		return
	}

	token, err := utils.GenerateToken(a.secret, AdminRole, a.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(a.ttl.Seconds()),
	})
}
