package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"food-marketplace-api/authgate"
	"food-marketplace-api/config"
	"food-marketplace-api/models"
)

const identityKey = "identity"

type Claims struct {
	UserID uint          `json:"user_id"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Role   authgate.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired resolves the caller's identity from the bearer token and runs
// it through the gate. A missing or invalid token produces the sign-in
// redirect decision, carrying the requested path for post-login return.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := resolveIdentity(c)
		decision := authgate.Decide(ident, false, c.Request.URL.Path, nil)
		if decision.Kind == authgate.DecisionSignIn {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": decision.RedirectTo + "?next=" + url.QueryEscape(decision.ReturnTo),
			})
			c.Abort()
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RoleRequired enforces that the caller's role is one of the allowed set
func RoleRequired(roles ...authgate.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		decision := authgate.Decide(ident, false, c.Request.URL.Path, roles)
		if decision.Kind != authgate.DecisionAllow {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "Access denied. Required role(s): " + rolesString(roles),
				"redirect": decision.RedirectTo,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveIdentity parses the bearer token; nil means no identity
func resolveIdentity(c *gin.Context) *authgate.Identity {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return &authgate.Identity{
		Subject: claims.RegisteredClaims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
	}
}

// GetIdentity extracts the resolved identity from context, nil if absent
func GetIdentity(c *gin.Context) *authgate.Identity {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	ident, _ := val.(*authgate.Identity)
	return ident
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	ident := GetIdentity(c)
	if ident == nil {
		return 0
	}
	id, _ := strconv.ParseUint(ident.Subject, 10, 64)
	return uint(id)
}

// GetRole extracts caller role from context
func GetRole(c *gin.Context) authgate.Role {
	ident := GetIdentity(c)
	if ident == nil {
		return ""
	}
	return ident.Role
}

func rolesString(roles []authgate.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}
