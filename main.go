package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"akariomart/internal/auth"
	"akariomart/internal/config"
	"akariomart/internal/database"
	"akariomart/internal/handlers"
	"akariomart/internal/middleware"
	"akariomart/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureContactIndexes(db); err != nil {
		log.Printf("contact index warning: %v", err)
	}

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL())
	protect := middleware.Protect(db, codec)

	r := gin.Default()
	r.Use(middleware.RequestID())

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", handlers.Register(db, codec))
		authRoutes.POST("/login", handlers.Login(db, codec))
		authRoutes.GET("/me", protect, handlers.GetMe())
		authRoutes.GET("/logout", protect, handlers.Logout())
		authRoutes.POST("/forgotpassword", handlers.ForgotPassword(db))
		authRoutes.PUT("/resetpassword/:resettoken", handlers.ResetPassword(db, codec))
	}

	users := r.Group("/api/users")
	{
		users.PUT("/profile", protect, handlers.UpdateProfile(db))

		users.GET("/cart", protect, handlers.GetCart(db))
		users.POST("/cart", protect, handlers.AddToCart(db))
		users.PUT("/cart", protect, handlers.UpdateCart(db))
		users.DELETE("/cart", protect, handlers.ClearCart(db))
		users.DELETE("/cart/:productId", protect, handlers.RemoveFromCart(db))

		users.GET("/wishlist", protect, handlers.GetWishlist(db))
		users.POST("/wishlist", protect, handlers.AddToWishlist(db))
		users.DELETE("/wishlist", protect, handlers.ClearWishlist(db))
		users.DELETE("/wishlist/:productId", protect, handlers.RemoveFromWishlist(db))

		admin := users.Group("/admin", protect, middleware.Authorize(models.RoleAdmin))
		{
			admin.GET("", handlers.ListUsers(db))
			admin.PUT("/:id", handlers.UpdateUser(db))
			admin.DELETE("/:id", handlers.DeleteUser(db))
		}
	}

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/:id", handlers.GetProduct(db))

		sellerOrAdmin := middleware.Authorize(models.RoleSeller, models.RoleAdmin)
		products.POST("", protect, sellerOrAdmin, handlers.CreateProduct(db))
		products.PUT("/:id", protect, sellerOrAdmin, handlers.UpdateProduct(db))
		products.DELETE("/:id", protect, sellerOrAdmin, handlers.DeleteProduct(db))
	}

	contact := r.Group("/api/contact")
	{
		contact.POST("", middleware.OptionalAuth(db, codec), handlers.CreateContactMessage(db))
		contact.GET("", protect, middleware.Authorize(models.RoleAdmin), handlers.GetContactMessages(db))
		contact.GET("/user", protect, handlers.GetUserContactMessages(db))
	}

	sellerContact := r.Group("/api/seller/contact", protect, middleware.Authorize(models.RoleSeller))
	{
		sellerContact.GET("", handlers.GetSellerInbox(db))
		sellerContact.POST("/:id/response", handlers.SendContactResponse(db))
		sellerContact.GET("/responses", handlers.GetSellerResponses(db))
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
