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
	"go.mongodb.org/mongo-driver/mongo/options"

	"akariomart/internal/middleware"
	"akariomart/internal/models"
)

type contactRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=100"`
	Message string `json:"message" binding:"required"`
}

type contactResponseRequest struct {
	ResponseMessage string `json:"responseMessage" binding:"required"`
}

// ContactWithResponse embeds the reply document when the message has been
// answered.
type ContactWithResponse struct {
	models.Contact
	ResponseDoc *models.Contact `json:"responseDetail,omitempty"`
}

// CreateContactMessage accepts both anonymous and authenticated senders; the
// sender reference is stored only when OptionalAuth resolved an identity.
func CreateContactMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		contact := models.Contact{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			CreatedAt: time.Now(),
		}
		if user, ok := middleware.CurrentUser(c); ok {
			contact.User = &user.ID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("contacts").InsertOne(ctx, contact)
		if err != nil {
			log.Println("[CONTACT] [ERROR] create message failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		contact.ID = res.InsertedID.(primitive.ObjectID)

		log.Println("[CONTACT] [INFO] message created:", contact.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": contact})
	}
}

func findContacts(ctx context.Context, db *mongo.Database, filter bson.M) ([]models.Contact, error) {
	cursor, err := db.Collection("contacts").Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := make([]models.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// attachResponses loads the reply documents referenced by the given messages.
func attachResponses(ctx context.Context, db *mongo.Database, contacts []models.Contact) ([]ContactWithResponse, error) {
	ids := make([]primitive.ObjectID, 0)
	for _, contact := range contacts {
		if contact.Response != nil {
			ids = append(ids, *contact.Response)
		}
	}

	responses := make(map[primitive.ObjectID]models.Contact, len(ids))
	if len(ids) > 0 {
		cursor, err := db.Collection("contacts").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var docs []models.Contact
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, doc := range docs {
			responses[doc.ID] = doc
		}
	}

	out := make([]ContactWithResponse, 0, len(contacts))
	for _, contact := range contacts {
		entry := ContactWithResponse{Contact: contact}
		if contact.Response != nil {
			if doc, exists := responses[*contact.Response]; exists {
				entry.ResponseDoc = &doc
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func GetContactMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		contacts, err := findContacts(ctx, db, bson.M{})
		if err != nil {
			log.Println("[CONTACT] [ERROR] list messages failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		expanded, err := attachResponses(ctx, db, contacts)
		if err != nil {
			log.Println("[CONTACT] [ERROR] expand responses failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(expanded), "data": expanded})
	}
}

func GetUserContactMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		contacts, err := findContacts(ctx, db, bson.M{"user": user.ID})
		if err != nil {
			log.Println("[CONTACT] [ERROR] list user messages failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		expanded, err := attachResponses(ctx, db, contacts)
		if err != nil {
			log.Println("[CONTACT] [ERROR] expand responses failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(expanded), "data": expanded})
	}
}

// GetSellerInbox lists messages that have not been answered yet.
func GetSellerInbox(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		contacts, err := findContacts(ctx, db, bson.M{"response": bson.M{"$exists": false}})
		if err != nil {
			log.Println("[CONTACT] [ERROR] list seller inbox failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(contacts), "data": contacts})
	}
}

// SendContactResponse stores a reply as a new Contact document linked to the
// original sender and marks the original message answered.
func SendContactResponse(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this route"})
			return
		}

		var req contactResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		contactID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contact message not found"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var original models.Contact
		if err := db.Collection("contacts").FindOne(ctx, bson.M{"_id": contactID}).Decode(&original); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Contact message not found"})
			return
		}

		reply := models.Contact{
			Name:      fmt.Sprintf("%s (Seller Response)", user.Name),
			Email:     user.Email,
			Subject:   "Re: " + original.Subject,
			Message:   strings.TrimSpace(req.ResponseMessage),
			User:      original.User,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("contacts").InsertOne(ctx, reply)
		if err != nil {
			log.Println("[CONTACT] [ERROR] store response failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}
		reply.ID = res.InsertedID.(primitive.ObjectID)

		_, err = db.Collection("contacts").UpdateByID(ctx, original.ID, bson.M{
			"$set": bson.M{"response": reply.ID},
		})
		if err != nil {
			log.Println("[CONTACT] [ERROR] link response failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		log.Println("[CONTACT] [INFO] response sent for:", original.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": reply})
	}
}

// GetSellerResponses lists the reply documents created by sellers.
func GetSellerResponses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		contacts, err := findContacts(ctx, db, bson.M{
			"name": bson.M{"$regex": "Seller Response", "$options": "i"},
		})
		if err != nil {
			log.Println("[CONTACT] [ERROR] list seller responses failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server Error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(contacts), "data": contacts})
	}
}
