// internal/adapters/httpapi/auth_handlers.go
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galliconnect/server/internal/application"
	"github.com/galliconnect/server/internal/domain"
)

type loginReq struct {
	Email    string          `json:"email" binding:"required"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := s.auth.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) register(c *gin.Context) {
	var req application.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Email == "" || req.Name == "" ||
		(req.Role != domain.RoleCustomer && req.Role != domain.RoleRetailer) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Role == domain.RoleRetailer && !req.ShopType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop type"})
		return
	}
	res, err := s.auth.Register(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type verifyReq struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func (s *Server) verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := s.auth.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
