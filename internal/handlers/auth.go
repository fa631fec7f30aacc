package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"akariomart/internal/auth"
	"akariomart/internal/middleware"
	"akariomart/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user seller admin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func Register(db *mongo.Database, codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		role := req.Role
		if role == "" {
			role = models.RoleUser
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already exists"})
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		user := models.User{
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Password:  hash,
			Role:      role,
			Cart:      []models.CartItem{},
			Wishlist:  []primitive.ObjectID{},
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already exists"})
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		user.ID = res.InsertedID.(primitive.ObjectID)
		token, err := codec.Issue(user.ID)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"token":   token,
			"data":    user.Public(),
		})
	}
}

func Login(db *mongo.Database, codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" || req.Role == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide email, password, and role"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			if err == mongo.ErrNoDocuments {
				log.Println("[AUTH] [ERROR] login unknown email")
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
				return
			}
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		if user.IsBlocked {
			log.Println("[AUTH] [ERROR] login blocked user:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "You are blocked by admin"})
			return
		}

		if user.Role != req.Role {
			log.Println("[AUTH] [ERROR] login role mismatch for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": fmt.Sprintf("Please login as %s", user.Role)})
			return
		}

		if !auth.CheckPassword(req.Password, user.Password) {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			return
		}

		token, err := codec.Issue(user.ID)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"data":    user.Public(),
		})
	}
}

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// Logout exists for API symmetry. Session tokens are stateless, so there is
// nothing to revoke server-side.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func ForgotPassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found with this email"})
			return
		}

		plain, hash, err := auth.NewResetToken()
		if err != nil {
			log.Println("[AUTH] [ERROR] reset token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		expire := time.Now().Add(10 * time.Minute)
		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{
				"resetPasswordToken":  hash,
				"resetPasswordExpire": expire,
			},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] reset token persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		// Mail delivery is handled outside this service; the link is logged so
		// operators can relay it in development.
		log.Println("[AUTH] [INFO] password reset link: /reset-password/" + plain)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset link generated"})
	}
}

func ResetPassword(db *mongo.Database, codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		hash := auth.HashResetToken(strings.TrimSpace(c.Param("resettoken")))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{
			"resetPasswordToken":  hash,
			"resetPasswordExpire": bson.M{"$gt": time.Now()},
		}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Println("[AUTH] [ERROR] reset password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set":   bson.M{"password": passwordHash},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpire": ""},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] reset password update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		token, err := codec.Issue(user.ID)
		if err != nil {
			log.Println("[AUTH] [ERROR] reset token issue failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[AUTH] [INFO] password reset for:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"data":    user.Public(),
		})
	}
}
