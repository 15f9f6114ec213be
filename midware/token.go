package midware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"forum/util"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	pr "go.mongodb.org/mongo-driver/bson/primitive"
)

var errToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(viper.GetString("jwt.secret"))
}

func token(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	if token == "" {
		token = c.Query("Authorization")
	}
	return strings.TrimPrefix(token, "Bearer ")
}

// caller resolves the user id carried by the request token
func caller(c *gin.Context) (pr.ObjectID, error) {
	claims, err := PhaseToken(token(c))
	if err != nil {
		return pr.NilObjectID, err
	}

	id, err := pr.ObjectIDFromHex(util.Exp(claims.Subject != "", claims.Subject, claims.Id))
	if err != nil || id.IsZero() {
		return pr.NilObjectID, errToken
	}
	return id, nil
}

// Authorize rejects requests without a valid token
func Authorize(c *gin.Context) {
	id, err := caller(c)
	if err != nil {
		Error(c, err, http.StatusUnauthorized)
		return
	}
	c.Set("id", id)
}

// Optional identifies the caller when a valid token is present
func Optional(c *gin.Context) {
	if id, err := caller(c); err == nil {
		c.Set("id", id)
	}
}

// UserId returns the caller set by Authorize or Optional, zero for anonymous callers
func UserId(c *gin.Context) pr.ObjectID {
	if v, ok := c.Get("id"); ok {
		if id, ok := v.(pr.ObjectID); ok {
			return id
		}
	}
	return pr.NilObjectID
}

// parse token
func PhaseToken(token string) (*jwt.StandardClaims, error) {
	if token == "" {
		return nil, errToken
	}
	claims := new(jwt.StandardClaims)

	tokenClaims, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errToken
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tokenClaims.Claims.(*jwt.StandardClaims)
	if !ok || !tokenClaims.Valid {
		return nil, errToken
	}
	return claims, nil
}

// GenerateToken signs a token for the user id
func GenerateToken(id string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   id,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
		Issuer:    "forum",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}
