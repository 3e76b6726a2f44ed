package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"digitalshop/internal/cart"
	"digitalshop/internal/checkout"
	"digitalshop/internal/domain"
	orderrepo "digitalshop/internal/repository/order"
	productrepo "digitalshop/internal/repository/product"
	adminsvc "digitalshop/internal/service/admin"
	contactsvc "digitalshop/internal/service/contact"
	usersvc "digitalshop/internal/service/user"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, fullName, photoURL *string) (*domain.User, error)
	AccessTTLSeconds() int
}

// CatalogService serves product listings and the category filter list.
type CatalogService interface {
	List(ctx context.Context, params productrepo.ListParams) (*productrepo.Page, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// AdminService backs the dashboard endpoints.
type AdminService interface {
	Stats(ctx context.Context) (*adminsvc.Stats, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	RecentUsers(ctx context.Context, limit int) ([]domain.User, error)
	RecentMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error)
	MonthlySales(ctx context.Context) ([]orderrepo.MonthlyTotal, error)
}

// ContactService accepts contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, in contactsvc.Input) (*domain.ContactMessage, error)
}

// OrderLister returns the order history of one user.
type OrderLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Users    UserService
	Catalog  CatalogService
	Admin    AdminService
	Contact  ContactService
	Orders   OrderLister
	Carts    *cart.Sessions
	Checkout *checkout.Flow
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(requestMetrics())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", sessionHeader)
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", signupHandler(deps.Users))
	auth.POST("/login", loginHandler(deps.Users))
	auth.GET("/me", requireUser(deps.Users), meHandler())
	auth.PATCH("/profile", requireUser(deps.Users), updateProfileHandler(deps.Users))

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))
	api.GET("/categories", listCategoriesHandler(deps.Catalog))

	api.POST("/cart/session", beginCartSessionHandler(deps.Carts))
	cartGroup := api.Group("/cart", requireSession(deps.Carts))
	cartGroup.GET("", getCartHandler())
	cartGroup.DELETE("", clearCartHandler())
	cartGroup.POST("/items", addCartItemHandler(deps.Catalog))
	cartGroup.PATCH("/items/:productId", setCartQuantityHandler())
	cartGroup.DELETE("/items/:productId", removeCartItemHandler())

	api.POST("/checkout", requireUser(deps.Users), requireSession(deps.Carts), checkoutHandler(deps.Checkout))
	api.GET("/orders", requireUser(deps.Users), listOrdersHandler(deps.Orders))

	api.POST("/contact", optionalUser(deps.Users), contactHandler(deps.Contact))

	adminGroup := api.Group("/admin", requireUser(deps.Users), requireAdmin())
	adminGroup.GET("/stats", adminStatsHandler(deps.Admin))
	adminGroup.GET("/orders", adminOrdersHandler(deps.Admin))
	adminGroup.GET("/users", adminUsersHandler(deps.Admin))
	adminGroup.GET("/messages", adminMessagesHandler(deps.Admin))
	adminGroup.GET("/sales", adminSalesHandler(deps.Admin))
	adminGroup.PUT("/products", adminUpsertProductHandler(deps.Catalog))

	return router
}
