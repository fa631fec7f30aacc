package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// CartItem is one (product, quantity) pair inside a user's embedded cart.
// The mutation helpers in cart.go keep at most one item per product.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// User is the persisted account document. Cart and wishlist live embedded in
// the document, so every mutation touches exactly one record.
type User struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                string               `bson:"name" json:"name"`
	Email               string               `bson:"email" json:"email"`
	Password            string               `bson:"password" json:"-"`
	Role                string               `bson:"role" json:"role"`
	IsBlocked           bool                 `bson:"isBlocked" json:"isBlocked"`
	Phone               string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Address             string               `bson:"address,omitempty" json:"address,omitempty"`
	ResetPasswordToken  string               `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire *time.Time           `bson:"resetPasswordExpire,omitempty" json:"-"`
	Cart                []CartItem           `bson:"cart" json:"cart"`
	Wishlist            []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the projection returned by the auth endpoints. It never
// carries the password hash or reset token fields.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// CanUseCart reports whether the role may mutate cart or wishlist state.
// Sellers and admins are read-only on both.
func CanUseCart(role string) bool {
	return role != RoleSeller && role != RoleAdmin
}
