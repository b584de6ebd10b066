package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	contextSubjectKey = "_sub"

	tokenAudience = "agenda://setup/v1"
)

var errSigningKeyMissing = errors.New("Webhook signing key is not configured")

// Authenticate performs authentication
func Authenticate(c *gin.Context) {
	subject, err := performAuthentication(c.GetHeader("Authorization"), getAPIStack().signingKey)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Error": err.Error()})
		return
	}

	c.Set(contextSubjectKey, subject)

	c.Header("X-Subject", subject)
}

func performAuthentication(header string, key []byte) (string, error) {
	if len(key) == 0 {
		return "", errSigningKeyMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("Invalid authorization header")
	}

	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "bearer":
		return validateToken(strings.TrimSpace(parts[1]), key)
	default:
		return "", fmt.Errorf("Invalid authorization type")
	}
}

func validateToken(t string, key []byte) (string, error) {
	token, err := jwt.Parse(t, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("Invalid token")
	}

	// MapClaims are re-decoded so the standard claim checks apply.
	data, _ := json.Marshal(token.Claims)
	claims := jwt.StandardClaims{}
	if err := json.Unmarshal(data, &claims); err != nil {
		return "", err
	}
	if err := claims.Valid(); err != nil {
		return "", err
	}
	if !claims.VerifyAudience(tokenAudience, true) {
		return "", errors.New("Invalid token audience")
	}

	return claims.Subject, nil
}
