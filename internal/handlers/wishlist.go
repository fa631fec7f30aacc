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

	"akariomart/internal/middleware"
	"akariomart/internal/models"
)

type wishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// expandWishlist resolves product display fields in wishlist order, skipping
// references whose product vanished from the catalog.
func expandWishlist(ctx context.Context, db *mongo.Database, wishlist []primitive.ObjectID) ([]models.ProductSummary, error) {
	summaries, err := fetchProductSummaries(ctx, db, wishlist)
	if err != nil {
		return nil, err
	}

	ordered := make([]models.ProductSummary, 0, len(wishlist))
	for _, id := range wishlist {
		if summary, exists := summaries[id]; exists {
			ordered = append(ordered, summary)
		}
	}
	return ordered, nil
}

func respondWithWishlist(ctx context.Context, c *gin.Context, db *mongo.Database, wishlist []primitive.ObjectID) {
	entries, err := expandWishlist(ctx, db, wishlist)
	if err != nil {
		log.Println("[WISHLIST] [ERROR] wishlist expansion failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

func saveWishlist(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, wishlist []primitive.ObjectID) error {
	_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"wishlist": wishlist},
	})
	return err
}

func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		respondWithWishlist(ctx, c, db, user.Wishlist)
	}
}

func AddToWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot add products to wishlist")
		if !ok {
			return
		}

		var req wishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		productID, exists, err := productExists(ctx, db, req.ProductID)
		if err != nil {
			log.Println("[WISHLIST] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		wishlist := models.AddWishlistItem(user.Wishlist, productID)
		if err := saveWishlist(ctx, db, user.ID, wishlist); err != nil {
			log.Println("[WISHLIST] [ERROR] add to wishlist persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		respondWithWishlist(ctx, c, db, wishlist)
	}
}

// RemoveFromWishlist is an idempotent no-op when the entry is absent,
// matching observed behavior; cart-line removal reports the miss instead.
func RemoveFromWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot modify wishlist")
		if !ok {
			return
		}

		wishlist := user.Wishlist
		if productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId"))); err == nil {
			wishlist = models.RemoveWishlistItem(wishlist, productID)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveWishlist(ctx, db, user.ID, wishlist); err != nil {
			log.Println("[WISHLIST] [ERROR] remove from wishlist persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		respondWithWishlist(ctx, c, db, wishlist)
	}
}

func ClearWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot modify wishlist")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveWishlist(ctx, db, user.ID, []primitive.ObjectID{}); err != nil {
			log.Println("[WISHLIST] [ERROR] clear wishlist persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.ProductSummary{}})
	}
}
