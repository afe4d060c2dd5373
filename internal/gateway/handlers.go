package gateway

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/crm/internal/gateway/registry"
	"github.com/nao1215/crm/pkg/middleware"
)

// defaultSubject はサブジェクト未指定時のトークン発行対象。
const defaultSubject = "user"

// detailInvalidRequest はリクエストボディが不正な場合の detail。
const detailInvalidRequest = "invalid request body"

// tokenResponse はトークン発行レスポンスのJSON構造。
type tokenResponse struct {
	// AccessToken は発行したBearerトークン。
	AccessToken string `json:"access_token"`
	// TokenType は常に "bearer"。
	TokenType string `json:"token_type"`
}

// customerRequest は顧客作成・更新リクエストのJSON構造。
type customerRequest struct {
	// Name は顧客名。
	Name string `json:"name" binding:"required"`
	// Email はメールアドレス。
	Email string `json:"email" binding:"required"`
}

// createOrderRequest は注文作成リクエストのJSON構造。
type createOrderRequest struct {
	// CustomerID は注文する顧客のID。
	CustomerID string `json:"customer_id" binding:"required"`
	// ProductName は商品名。
	ProductName string `json:"product_name" binding:"required"`
	// Price は価格。0を許可するためポインタで受け取る。
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// orderSummary は注文一覧の要素。customer_id はパスで指定済みのため含めない。
type orderSummary struct {
	ID          string  `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
}

// handleRegister はトークンを発行するハンドラを返す。
// クエリパラメータ username をサブジェクトとして使用する。
func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.Query("username")
		if subject == "" {
			subject = defaultSubject
		}
		s.issueToken(c, subject)
	}
}

// handleLogin はトークンを発行するハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.issueToken(c, defaultSubject)
	}
}

func (s *Server) issueToken(c *gin.Context, subject string) {
	token, err := middleware.IssueToken(s.jwtSecret, subject, s.clock())
	if err != nil {
		log.Printf("[Gateway] トークン発行エラー: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: middleware.TokenType})
}

// handleListCustomers は顧客一覧を返すハンドラを返す。
func (s *Server) handleListCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := s.customers.List(c.Request.Context())
		if err != nil {
			respondError(c, opListCustomers, err)
			return
		}
		if customers == nil {
			customers = []registry.Customer{}
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

// handleCreateCustomer は顧客を作成するハンドラを返す。
func (s *Server) handleCreateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[Gateway] 顧客作成リクエストが不正: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"detail": detailInvalidRequest})
			return
		}

		customer, err := s.customers.Create(c.Request.Context(), registry.CustomerInput{Name: req.Name, Email: req.Email})
		if err != nil {
			respondError(c, opCreateCustomer, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// handleGetCustomer は顧客を1件返すハンドラを返す。
func (s *Server) handleGetCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := s.customers.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, opGetCustomer, err)
			return
		}
		if customer == nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": detailCustomerNotFound})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// handleUpdateCustomer は顧客を更新するハンドラを返す。
func (s *Server) handleUpdateCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[Gateway] 顧客更新リクエストが不正: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"detail": detailInvalidRequest})
			return
		}

		customer, err := s.customers.Update(c.Request.Context(), c.Param("id"), registry.CustomerInput{Name: req.Name, Email: req.Email})
		if err != nil {
			respondError(c, opUpdateCustomer, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// handleDeleteCustomer は顧客を削除するハンドラを返す。
func (s *Server) handleDeleteCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, opDeleteCustomer, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// handleCreateOrder は顧客の存在を確認してから注文を作成するハンドラを返す。
func (s *Server) handleCreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("[Gateway] 注文作成リクエストが不正: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"detail": detailInvalidRequest})
			return
		}

		intent := registry.OrderIntent{
			CustomerID:  req.CustomerID,
			ProductName: req.ProductName,
			Price:       *req.Price,
		}
		order, err := s.orchestrator.CreateOrder(c.Request.Context(), intent)
		if err != nil {
			respondError(c, opCreateOrder, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// handleListOrdersByCustomer は顧客の注文一覧を返すハンドラを返す。
func (s *Server) handleListOrdersByCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.orders.ListByCustomer(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, opListOrders, err)
			return
		}

		summaries := make([]orderSummary, 0, len(orders))
		for _, o := range orders {
			summaries = append(summaries, orderSummary{
				ID:          o.ID,
				ProductName: o.ProductName,
				Price:       o.Price,
				CreatedAt:   o.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"orders": summaries})
	}
}
