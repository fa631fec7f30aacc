package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"akariomart/internal/middleware"
	"akariomart/internal/models"
)

type updateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type updateUserRequest struct {
	IsBlocked *bool `json:"isBlocked" binding:"required"`
}

// UpdateProfile applies only the supplied fields. Password, role, cart and
// wishlist are never touched here.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updates := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": []string{"name is required"}})
				return
			}
			updates["name"] = name
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email != user.Email {
				count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
				if err != nil {
					log.Println("[USER] [ERROR] profile email check failed:", err)
					c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
					return
				}
				if count > 0 {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already exists"})
					return
				}
			}
			updates["email"] = email
		}

		if len(updates) == 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": user.Public()})
			return
		}

		if _, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{"$set": updates}); err != nil {
			log.Println("[USER] [ERROR] profile update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		var updated models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": user.ID}).Decode(&updated); err != nil {
			log.Println("[USER] [ERROR] profile reload failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[USER] [INFO] profile updated:", updated.Email)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated.Public()})
	}
}

func ListUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			log.Println("[USER] [ERROR] list users failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			log.Println("[USER] [ERROR] decode users failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "data": users})
	}
}

// UpdateUser toggles the block flag. Roles are immutable once assigned, so
// no other account field is admin-editable here.
func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		err = db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"isBlocked": *req.IsBlocked}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
				return
			}
			log.Println("[USER] [ERROR] update user failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[USER] [INFO] user block flag set:", updated.Email, *req.IsBlocked)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			log.Println("[USER] [ERROR] delete user failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}

		log.Println("[USER] [INFO] user deleted:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
