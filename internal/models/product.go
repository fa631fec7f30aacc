package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Discount    float64            `bson:"discount" json:"discount"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Seller      primitive.ObjectID `bson:"seller,omitempty" json:"seller,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductSummary carries the display fields embedded in cart and wishlist
// responses: name, price, discount and image.
type ProductSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Discount float64            `bson:"discount" json:"discount"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
}

// DiscountedPrice applies the percentage discount to the list price. Discounts
// outside 0-100 are ignored.
func DiscountedPrice(price, discount float64) float64 {
	if discount <= 0 || discount > 100 {
		return price
	}
	return price * (100 - discount) / 100
}
