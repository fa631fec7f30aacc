package models

import "testing"

func TestDiscountedPrice(t *testing.T) {
	if got := DiscountedPrice(100, 25); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := DiscountedPrice(100, 0); got != 100 {
		t.Fatalf("expected list price when discount is 0, got %v", got)
	}
	if got := DiscountedPrice(100, -10); got != 100 {
		t.Fatalf("expected negative discount to be ignored, got %v", got)
	}
	if got := DiscountedPrice(100, 150); got != 100 {
		t.Fatalf("expected out-of-range discount to be ignored, got %v", got)
	}
}

func TestPublicProjectionOmitsSecrets(t *testing.T) {
	user := User{Name: "Alice", Email: "alice@example.com", Role: RoleUser, Password: "hash"}
	public := user.Public()

	if public.Name != "Alice" || public.Email != "alice@example.com" || public.Role != RoleUser {
		t.Fatalf("unexpected projection: %+v", public)
	}
}
