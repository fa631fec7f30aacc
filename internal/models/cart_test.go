package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddCartItemMergesQuantity(t *testing.T) {
	productID := primitive.NewObjectID()

	cart := AddCartItem(nil, productID, 2)
	cart = AddCartItem(cart, productID, 3)

	if len(cart) != 1 {
		t.Fatalf("expected one line for the product, got %d", len(cart))
	}
	if cart[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart[0].Quantity)
	}
}

func TestAddCartItemKeepsDistinctProducts(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	cart := AddCartItem(nil, first, 1)
	cart = AddCartItem(cart, second, 4)

	if len(cart) != 2 {
		t.Fatalf("expected two lines, got %d", len(cart))
	}
}

func TestSetCartQuantityReplaces(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := AddCartItem(nil, productID, 2)

	cart, found := SetCartQuantity(cart, productID, 7)
	if !found {
		t.Fatal("expected the line to be found")
	}
	if cart[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart[0].Quantity)
	}
}

func TestSetCartQuantityZeroRemovesAndDoesNotResurrect(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := AddCartItem(nil, productID, 2)

	cart, found := SetCartQuantity(cart, productID, 0)
	if !found {
		t.Fatal("expected the line to be found")
	}
	if len(cart) != 0 {
		t.Fatalf("expected empty cart after setting quantity to 0, got %d lines", len(cart))
	}

	if _, found := SetCartQuantity(cart, productID, 1); found {
		t.Fatal("set must not resurrect a removed line")
	}
}

func TestSetCartQuantityMissingLine(t *testing.T) {
	if _, found := SetCartQuantity(nil, primitive.NewObjectID(), 3); found {
		t.Fatal("expected miss on empty cart")
	}
}

func TestRemoveCartItem(t *testing.T) {
	productID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	cart := AddCartItem(nil, productID, 2)
	cart = AddCartItem(cart, other, 1)

	cart, found := RemoveCartItem(cart, productID)
	if !found {
		t.Fatal("expected the line to be removed")
	}
	if len(cart) != 1 || cart[0].Product != other {
		t.Fatalf("expected only the other product to remain, got %+v", cart)
	}

	if _, found := RemoveCartItem(cart, productID); found {
		t.Fatal("removing an absent line must report the miss")
	}
}

func TestAddWishlistItemIsSet(t *testing.T) {
	productID := primitive.NewObjectID()

	wishlist := AddWishlistItem(nil, productID)
	wishlist = AddWishlistItem(wishlist, productID)

	if len(wishlist) != 1 {
		t.Fatalf("expected one entry after duplicate add, got %d", len(wishlist))
	}
}

func TestRemoveWishlistItemIdempotent(t *testing.T) {
	productID := primitive.NewObjectID()
	absent := primitive.NewObjectID()

	wishlist := AddWishlistItem(nil, productID)
	wishlist = RemoveWishlistItem(wishlist, absent)
	if len(wishlist) != 1 {
		t.Fatalf("removing an absent entry must not change the wishlist, got %d entries", len(wishlist))
	}

	wishlist = RemoveWishlistItem(wishlist, productID)
	if len(wishlist) != 0 {
		t.Fatalf("expected empty wishlist, got %d entries", len(wishlist))
	}

	wishlist = RemoveWishlistItem(wishlist, productID)
	if len(wishlist) != 0 {
		t.Fatal("second removal must stay a no-op")
	}
}

func TestCanUseCart(t *testing.T) {
	if !CanUseCart(RoleUser) {
		t.Fatal("shoppers must be allowed to use the cart")
	}
	if CanUseCart(RoleSeller) || CanUseCart(RoleAdmin) {
		t.Fatal("sellers and admins must not be allowed to use the cart")
	}
}
