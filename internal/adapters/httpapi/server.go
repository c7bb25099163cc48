// internal/adapters/httpapi/server.go
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/galliconnect/server/internal/application"
	"github.com/galliconnect/server/internal/domain"
)

type Server struct {
	engine    *gin.Engine
	auth      *application.AuthService
	customers *application.CustomerService
	retailers *application.RetailerService
	admin     *application.AdminService
	log       *logrus.Logger
}

func NewServer(
	auth *application.AuthService,
	customers *application.CustomerService,
	retailers *application.RetailerService,
	admin *application.AdminService,
	log *logrus.Logger,
) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:    r,
		auth:      auth,
		customers: customers,
		retailers: retailers,
		admin:     admin,
		log:       log,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", s.login)
	authGroup.POST("/register", s.register)
	authGroup.POST("/verify", s.verify)

	customer := v1.Group("/", requireAuth(), requireRole(domain.RoleCustomer))
	{
		customer.GET("shops", s.listShops)
		customer.GET("shops/:id/products", s.shopCatalog)
		customer.GET("cart", s.getCart)
		customer.POST("cart/items/:productId", s.addCartItem)
		customer.DELETE("cart/items/:productId", s.removeCartItem)
		customer.POST("checkout", s.checkout)
		customer.GET("orders", s.customerOrders)
		customer.GET("orders/stream", s.customerOrderStream)
	}

	retailer := v1.Group("/retailer", requireAuth(), requireRole(domain.RoleRetailer))
	{
		retailer.GET("/shop", s.retailerShop)
		retailer.POST("/shop/toggle", s.toggleShop)
		retailer.GET("/products", s.retailerProducts)
		retailer.POST("/products", s.addProduct)
		retailer.POST("/products/:id/stock", s.setProductStock)
		retailer.GET("/orders", s.retailerOrders)
		retailer.POST("/orders/:id/advance", s.advanceOrder)
		retailer.GET("/earnings", s.earnings)
		retailer.GET("/orders/stream", s.retailerOrderStream)
	}

	admin := v1.Group("/admin", requireAuth(), requireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", s.platformStats)
		admin.GET("/retailers", s.adminRetailers)
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrInvalidCode):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrAccountNotFound),
		errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrEmptyCart),
		errors.Is(err, application.ErrOutOfStock),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
