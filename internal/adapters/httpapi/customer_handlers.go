// internal/adapters/httpapi/customer_handlers.go
package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/galliconnect/server/internal/domain"
)

func parseCoord(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (s *Server) listShops(c *gin.Context) {
	shops, err := s.customers.Shops(c.Request.Context(), parseCoord(c, "lat"), parseCoord(c, "lng"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (s *Server) shopCatalog(c *gin.Context) {
	products, err := s.customers.Catalog(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getCart(c *gin.Context) {
	items, summary := s.customers.Cart(currentClaims(c).UserID)
	c.JSON(http.StatusOK, gin.H{"items": items, "summary": summary})
}

func (s *Server) addCartItem(c *gin.Context) {
	err := s.customers.AddToCart(c.Request.Context(), currentClaims(c).UserID, c.Param("productId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	items, summary := s.customers.Cart(currentClaims(c).UserID)
	c.JSON(http.StatusOK, gin.H{"items": items, "summary": summary})
}

func (s *Server) removeCartItem(c *gin.Context) {
	s.customers.RemoveFromCart(currentClaims(c).UserID, c.Param("productId"))
	items, summary := s.customers.Cart(currentClaims(c).UserID)
	c.JSON(http.StatusOK, gin.H{"items": items, "summary": summary})
}

type checkoutReq struct {
	ShopID       string `json:"shopId" binding:"required"`
	DeliverySlot string `json:"deliverySlot"`
}

func (s *Server) checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	order, err := s.customers.Checkout(c.Request.Context(), currentClaims(c).UserID, req.ShopID, req.DeliverySlot)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) customerOrders(c *gin.Context) {
	orders, err := s.customers.Orders(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) customerOrderStream(c *gin.Context) {
	sub, cancel, err := s.customers.SubscribeOrders(c.Request.Context(), currentClaims(c).UserID)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer cancel()
	streamOrders(c, sub)
}

// streamOrders writes each snapshot as a server-sent event until the
// subscription closes or the client goes away.
func streamOrders(c *gin.Context, sub <-chan []domain.Order) {
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub:
			if !ok {
				return false
			}
			c.SSEvent("orders", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
