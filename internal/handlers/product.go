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

type createProductRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Discount    float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" binding:"omitempty,gte=0"`
}

type updateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Discount    *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{})
		if err != nil {
			log.Println("[PRODUCT] [ERROR] list products failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("[PRODUCT] [ERROR] decode products failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
	}
}

func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		product := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Price:       req.Price,
			Discount:    req.Discount,
			Image:       strings.TrimSpace(req.Image),
			Category:    strings.TrimSpace(req.Category),
			Stock:       req.Stock,
			Seller:      user.ID,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("[PRODUCT] [ERROR] create product failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[PRODUCT] [INFO] product created:", product.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}

// loadOwnedProduct fetches the product and enforces that the caller is its
// seller or an admin.
func loadOwnedProduct(ctx context.Context, c *gin.Context, db *mongo.Database, action string) (*models.Product, *models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
		return nil, nil, false
	}

	productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return nil, nil, false
	}

	var product models.Product
	if err := db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		return nil, nil, false
	}

	if product.Seller != user.ID && user.Role != models.RoleAdmin {
		log.Println("[PRODUCT] [ERROR] ownership check failed for:", user.ID.Hex())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to " + action + " this product"})
		return nil, nil, false
	}

	return &product, user, true
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, _, ok := loadOwnedProduct(ctx, c, db, "update")
		if !ok {
			return
		}

		var req updateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updates := bson.M{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Discount != nil {
			updates["discount"] = *req.Discount
		}
		if req.Image != nil {
			updates["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Category != nil {
			updates["category"] = strings.TrimSpace(*req.Category)
		}
		if req.Stock != nil {
			updates["stock"] = *req.Stock
		}

		if len(updates) > 0 {
			if _, err := db.Collection("products").UpdateByID(ctx, product.ID, bson.M{"$set": updates}); err != nil {
				log.Println("[PRODUCT] [ERROR] update product failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
				return
			}
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": product.ID}).Decode(&updated); err != nil {
			log.Println("[PRODUCT] [ERROR] reload product failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, _, ok := loadOwnedProduct(ctx, c, db, "delete")
		if !ok {
			return
		}

		if _, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": product.ID}); err != nil {
			log.Println("[PRODUCT] [ERROR] delete product failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[PRODUCT] [INFO] product deleted:", product.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
