package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"akariomart/internal/auth"
	"akariomart/internal/models"
)

const identityKey = "currentUser"

func bearerToken(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return "", false
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Protect requires a valid bearer token bound to an existing, unblocked user
// and attaches the resolved user to the context.
func Protect(db *mongo.Database, codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			log.Println("[AUTH] [ERROR] missing or malformed bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		userID, err := codec.Verify(tokenString)
		if err != nil {
			message := "Not authorized to access this route"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Session expired, please login again"
			}
			log.Println("[AUTH] [ERROR] token verification failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": message})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] token user no longer exists")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		if user.IsBlocked {
			log.Println("[AUTH] [ERROR] blocked user rejected:", user.Email)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "You are blocked by admin"})
			return
		}

		SetCurrentUser(c, &user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but never
// fails the request. Anonymous, invalid-token and blocked-user requests all
// proceed without an identity.
func OptionalAuth(db *mongo.Database, codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		userID, err := codec.Verify(tokenString)
		if err != nil {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.Next()
			return
		}

		if !user.IsBlocked {
			SetCurrentUser(c, &user)
		}
		c.Next()
	}
}

// Authorize restricts the route to the given roles. It must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		log.Println("[AUTH] [ERROR] role not allowed:", user.Role)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   fmt.Sprintf("User role %s is not authorized to access this route", user.Role),
		})
	}
}

// SetCurrentUser attaches a resolved identity to the request context.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(identityKey, user)
}

// CurrentUser returns the identity attached by Protect or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
