package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "onsenswapd"
	operatorKey = "operator"
)

// TxClaims are the claims of a tx route bearer token
type TxClaims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// TokenAuth issues and checks HS256 bearer tokens for the tx routes
type TokenAuth struct {
	secret []byte
}

// NewTokenAuth returns nil for an empty secret, which leaves tx routes open
func NewTokenAuth(secret string) *TokenAuth {
	if secret == "" {
		return nil
	}
	return &TokenAuth{secret: []byte(secret)}
}

// GenerateToken signs a token for operator valid for ttl
func (ta *TokenAuth) GenerateToken(operator string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TxClaims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ta.secret)
}

// ValidateToken validates a token and returns its claims
func (ta *TokenAuth) ValidateToken(tokenString string) (*TxClaims, error) {
	claims := &TxClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ta.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AuthMiddleware requires a valid bearer token when auth is configured
func AuthMiddleware(auth *TokenAuth, audit *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			abortUnauthorized(c, audit, "missing bearer token")
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, audit, err.Error())
			return
		}

		c.Set(operatorKey, claims.Operator)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, audit *AuditLogger, reason string) {
	audit.Log(AuditEvent{
		EventType: "auth_failed",
		Severity:  "warning",
		IPAddress: c.ClientIP(),
		Action:    c.Request.Method + " " + c.FullPath(),
		Status:    "blocked",
		RequestID: c.GetString(requestIDKey),
		Details:   map[string]interface{}{"reason": reason},
	})
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   "Unauthorized",
		Code:    "UNAUTHORIZED",
		Details: reason,
	})
}
