package routes

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"selta_back_end/internal/cache"
	"selta_back_end/internal/config"
	"selta_back_end/internal/handlers"
	"selta_back_end/internal/handlers/payment"
	"selta_back_end/internal/middleware"
	"selta_back_end/internal/utils"
)

// App bundles the wired dependencies handed to every route group.
type App struct {
	Cfg      config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Elastic  *elasticsearch.Client
	MinIO    *minio.Client
	Sessions *cache.SessionCache
	Gateway  payment.Gateway
	Mailer   *utils.Mailer
}

func Register(r *gin.Engine, app *App) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthRequired(app.DB, app.Sessions, app.Cfg.JWTSecret)
	admin := middleware.RequireRole("admin")

	api := r.Group("/api")
	{
		api.POST("/auth/signup", handlers.Signup(app.DB, app.Cfg))
		api.POST("/auth/signin", handlers.Signin(app.DB, app.Cfg))
		api.POST("/auth/signout", auth, handlers.Signout(app.DB, app.Sessions))
		api.GET("/auth/session", auth, handlers.Session())
		api.GET("/auth/:provider", handlers.OAuthBegin())
		api.GET("/auth/:provider/callback", handlers.OAuthCallback(app.DB, app.Cfg))

		api.GET("/categories", handlers.ListCategories(app.DB))

		api.GET("/products", handlers.ListProducts(app.DB))
		api.GET("/products/search", handlers.SearchProducts(app.DB, app.Elastic))
		api.GET("/products/:id", handlers.GetProduct(app.DB))
		api.GET("/products/:id/testimonials", handlers.ProductTestimonials(app.DB))

		api.GET("/banners", handlers.ListBanners(app.DB))

		api.GET("/testimonials", handlers.ListTestimonials(app.DB))
		api.GET("/testimonials/stats", handlers.TestimonialStats(app.DB))
		api.POST("/testimonials", auth, handlers.SubmitTestimonial(app.DB))

		api.GET("/cart", auth, handlers.GetCart(app.DB))
		api.POST("/cart", auth, handlers.AddToCart(app.DB))
		api.PUT("/cart/:product_id", auth, handlers.UpdateCartItem(app.DB))
		api.DELETE("/cart/:product_id", auth, handlers.RemoveFromCart(app.DB))
		api.DELETE("/cart", auth, handlers.ClearCart(app.DB))

		api.GET("/addresses", auth, handlers.ListAddresses(app.DB))
		api.POST("/addresses", auth, handlers.CreateAddress(app.DB))
		api.PUT("/addresses/:id", auth, handlers.UpdateAddress(app.DB))
		api.DELETE("/addresses/:id", auth, handlers.DeleteAddress(app.DB))

		api.POST("/stripe/create-payment-intent", auth, payment.CreatePaymentIntent(app.Gateway))
		api.POST("/stripe/confirm-payment", auth, payment.ConfirmPayment(app.DB, app.Gateway, app.Mailer, app.Cfg))

		api.GET("/orders", auth, handlers.ListOrders(app.DB))
		api.GET("/orders/:orderId", auth, handlers.GetOrder(app.DB))

		api.GET("/user/testimonials", auth, handlers.MyTestimonials(app.DB))
		api.PUT("/user/testimonials/:id", auth, handlers.UpdateMyTestimonial(app.DB))
		api.DELETE("/user/testimonials/:id", auth, handlers.DeleteMyTestimonial(app.DB))

		api.POST("/upload-image", auth, handlers.UploadImage(app.MinIO, app.Cfg.MinioBucket))
	}

	adm := r.Group("/api/admin", auth, admin)
	{
		adm.GET("/categories", handlers.AdminListCategories(app.DB))
		adm.POST("/categories", handlers.CreateCategory(app.DB))
		adm.PUT("/categories/:id", handlers.UpdateCategory(app.DB))
		adm.DELETE("/categories/:id", handlers.DeleteCategory(app.DB))

		adm.GET("/products", handlers.AdminListProducts(app.DB))
		adm.POST("/products", handlers.CreateProduct(app.DB, app.Elastic))
		adm.PUT("/products/:id", handlers.UpdateProduct(app.DB, app.Elastic))
		adm.DELETE("/products/:id", handlers.DeleteProduct(app.DB, app.Elastic))

		adm.GET("/orders", handlers.AdminListOrders(app.DB))
		adm.PUT("/orders/:orderId/status", handlers.UpdateOrderStatus(app.DB))
		adm.PUT("/orders/:orderId/tracking", handlers.UpdateOrderTracking(app.DB))

		adm.GET("/users", handlers.AdminListUsers(app.DB))
		adm.PUT("/users/:userId/role", handlers.UpdateUserRole(app.DB))

		adm.GET("/banners", handlers.AdminListBanners(app.DB))
		adm.POST("/banners", handlers.CreateBanner(app.DB))
		adm.PATCH("/banners/reorder", handlers.ReorderBanners(app.DB))
		adm.GET("/banners/stats", handlers.BannerStats(app.DB))
		adm.POST("/banners/upload-image", handlers.UploadBannerImage(app.MinIO, app.Cfg.MinioBucket))
		adm.PUT("/banners/:id", handlers.UpdateBanner(app.DB))
		adm.DELETE("/banners/:id", handlers.DeleteBanner(app.DB))
		adm.PATCH("/banners/:id/status", handlers.UpdateBannerStatus(app.DB))

		adm.GET("/testimonials", handlers.AdminListTestimonials(app.DB))
		adm.GET("/testimonials/dashboard", handlers.TestimonialDashboard(app.DB))
		adm.PATCH("/testimonials/:id/status", handlers.UpdateTestimonialStatus(app.DB))
		adm.PATCH("/testimonials/:id/featured", handlers.UpdateTestimonialFeatured(app.DB))
		adm.DELETE("/testimonials/:id", handlers.AdminDeleteTestimonial(app.DB))
	}
}
