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

type cartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a cart entry expanded with product display fields.
type CartLine struct {
	Product   models.ProductSummary `json:"product"`
	Quantity  int                   `json:"quantity"`
	LineTotal float64               `json:"lineTotal"`
}

// productExists checks the catalog for the id. A malformed id resolves to no
// product rather than a validation failure.
func productExists(ctx context.Context, db *mongo.Database, raw string) (primitive.ObjectID, bool, error) {
	productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, false, nil
	}

	err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Err()
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return productID, true, nil
}

func fetchProductSummaries(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProductSummary, error) {
	summaries := make(map[primitive.ObjectID]models.ProductSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.ProductSummary
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	for _, product := range products {
		summaries[product.ID] = product
	}
	return summaries, nil
}

// expandCart resolves product display fields for every line, keeping cart
// order. Lines whose product vanished from the catalog are skipped.
func expandCart(ctx context.Context, db *mongo.Database, cart []models.CartItem) ([]CartLine, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.Product)
	}

	summaries, err := fetchProductSummaries(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(cart))
	for _, item := range cart {
		summary, exists := summaries[item.Product]
		if !exists {
			continue
		}
		lines = append(lines, CartLine{
			Product:   summary,
			Quantity:  item.Quantity,
			LineTotal: models.DiscountedPrice(summary.Price, summary.Discount) * float64(item.Quantity),
		})
	}
	return lines, nil
}

func respondWithCart(ctx context.Context, c *gin.Context, db *mongo.Database, cart []models.CartItem) {
	lines, err := expandCart(ctx, db, cart)
	if err != nil {
		log.Println("[CART] [ERROR] cart expansion failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": lines})
}

func saveCart(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, cart []models.CartItem) error {
	_, err := db.Collection("users").UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"cart": cart},
	})
	return err
}

// requireShopper rejects sellers and admins from cart/wishlist mutations.
func requireShopper(c *gin.Context, action string) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
		return nil, false
	}
	if !models.CanUseCart(user.Role) {
		log.Println("[CART] [ERROR] role rejected:", user.Role)
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": action})
		return nil, false
	}
	return user, true
}

func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		respondWithCart(ctx, c, db, user.Cart)
	}
}

func AddToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot add products to cart")
		if !ok {
			return
		}

		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		productID, exists, err := productExists(ctx, db, req.ProductID)
		if err != nil {
			log.Println("[CART] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		cart := models.AddCartItem(user.Cart, productID, req.Quantity)
		if err := saveCart(ctx, db, user.ID, cart); err != nil {
			log.Println("[CART] [ERROR] add to cart persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		respondWithCart(ctx, c, db, cart)
	}
}

func UpdateCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot modify cart")
		if !ok {
			return
		}

		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		productID, exists, err := productExists(ctx, db, req.ProductID)
		if err != nil {
			log.Println("[CART] [ERROR] product lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		cart, found := models.SetCartQuantity(user.Cart, productID, req.Quantity)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not in cart"})
			return
		}

		if err := saveCart(ctx, db, user.ID, cart); err != nil {
			log.Println("[CART] [ERROR] update cart persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		respondWithCart(ctx, c, db, cart)
	}
}

func RemoveFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot modify cart")
		if !ok {
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("productId")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not in cart"})
			return
		}

		cart, found := models.RemoveCartItem(user.Cart, productID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not in cart"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveCart(ctx, db, user.ID, cart); err != nil {
			log.Println("[CART] [ERROR] remove from cart persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		respondWithCart(ctx, c, db, cart)
	}
}

func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireShopper(c, "Admins and sellers cannot modify cart")
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := saveCart(ctx, db, user.ID, []models.CartItem{}); err != nil {
			log.Println("[CART] [ERROR] clear cart persist failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": []CartLine{}})
	}
}
