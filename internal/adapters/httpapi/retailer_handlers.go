// internal/adapters/httpapi/retailer_handlers.go
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galliconnect/server/internal/domain"
)

func (s *Server) retailerShop(c *gin.Context) {
	shop, err := s.retailers.Shop(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (s *Server) toggleShop(c *gin.Context) {
	shop, err := s.retailers.ToggleShop(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (s *Server) retailerProducts(c *gin.Context) {
	products, err := s.retailers.Products(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type addProductReq struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity string  `json:"quantity" binding:"required"`
}

func (s *Server) addProduct(c *gin.Context) {
	var req addProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	product, err := s.retailers.AddProduct(c.Request.Context(), currentClaims(c).UserID, req.Name, req.Price, req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

type stockReq struct {
	InStock *bool `json:"inStock" binding:"required"`
}

func (s *Server) setProductStock(c *gin.Context) {
	var req stockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	err := s.retailers.SetProductStock(c.Request.Context(), currentClaims(c).UserID, c.Param("id"), *req.InStock)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) retailerOrders(c *gin.Context) {
	orders, err := s.retailers.Orders(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type advanceReq struct {
	Action domain.StatusAction `json:"action" binding:"required"`
}

func (s *Server) advanceOrder(c *gin.Context) {
	var req advanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	order, err := s.retailers.AdvanceOrder(c.Request.Context(), currentClaims(c).UserID, c.Param("id"), req.Action)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) earnings(c *gin.Context) {
	stats, err := s.retailers.Earnings(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) retailerOrderStream(c *gin.Context) {
	sub, cancel, err := s.retailers.SubscribeOrders(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer cancel()
	streamOrders(c, sub)
}
