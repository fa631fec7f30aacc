package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AddCartItem merges the quantity into an existing line for the product or
// appends a new line. The cart never holds two lines for the same product.
func AddCartItem(cart []CartItem, productID primitive.ObjectID, quantity int) []CartItem {
	for i := range cart {
		if cart[i].Product == productID {
			cart[i].Quantity += quantity
			return cart
		}
	}
	return append(cart, CartItem{Product: productID, Quantity: quantity})
}

// SetCartQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line. The second return value reports whether the
// product had a line in the cart.
func SetCartQuantity(cart []CartItem, productID primitive.ObjectID, quantity int) ([]CartItem, bool) {
	for i := range cart {
		if cart[i].Product == productID {
			if quantity <= 0 {
				return append(cart[:i], cart[i+1:]...), true
			}
			cart[i].Quantity = quantity
			return cart, true
		}
	}
	return cart, false
}

// RemoveCartItem drops the line for the product. The second return value
// reports whether a line was present.
func RemoveCartItem(cart []CartItem, productID primitive.ObjectID) ([]CartItem, bool) {
	for i := range cart {
		if cart[i].Product == productID {
			return append(cart[:i], cart[i+1:]...), true
		}
	}
	return cart, false
}

// AddWishlistItem inserts the product reference unless it is already present.
func AddWishlistItem(wishlist []primitive.ObjectID, productID primitive.ObjectID) []primitive.ObjectID {
	for _, id := range wishlist {
		if id == productID {
			return wishlist
		}
	}
	return append(wishlist, productID)
}

// RemoveWishlistItem drops the reference if present. Removing an absent entry
// is a no-op, unlike cart-line removal which reports the miss.
func RemoveWishlistItem(wishlist []primitive.ObjectID, productID primitive.ObjectID) []primitive.ObjectID {
	updated := make([]primitive.ObjectID, 0, len(wishlist))
	for _, id := range wishlist {
		if id == productID {
			continue
		}
		updated = append(updated, id)
	}
	return updated
}
