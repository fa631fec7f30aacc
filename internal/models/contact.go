package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a message sent through the contact form. Replies are stored as
// separate Contact documents linked from the original through Response.
type Contact struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Email     string              `bson:"email" json:"email"`
	Subject   string              `bson:"subject" json:"subject"`
	Message   string              `bson:"message" json:"message"`
	User      *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Response  *primitive.ObjectID `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}
