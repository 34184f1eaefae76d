package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/httpx"
)

const (
	serviceName    = "spookymart-order-service"
	serviceVersion = "1.0.0"

	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Handler struct {
	service ports.OrderService
	catalog ports.Catalog
	log     ports.Logger
	timeout time.Duration
}

func NewHandler(service ports.OrderService, catalog ports.Catalog, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, catalog: catalog, log: log, timeout: timeout}
}

// requestContext — per-handler deadline on top of the request context.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// ---- wire formats ----

// itemPayload — line item as submitted. Quantity defaults to 1 and
// unit_price to 0 when omitted.
type itemPayload struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    *int     `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
}

func (p itemPayload) toDomain() domain.OrderItem {
	item := domain.OrderItem{
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Quantity:    1,
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	return item
}

type createOrderRequest struct {
	CustomerEmail   string                 `json:"customer_email"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	Items           []itemPayload          `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
}

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

type listOrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []*domain.Order `json:"orders"`
	Total   int             `json:"total"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func abortError(c *gin.Context, status int, kind, message string) {
	c.JSON(status, errorResponse{Success: false, Error: kind, Message: message})
}

func abortNotFound(c *gin.Context, orderID string) {
	abortError(c, http.StatusNotFound, "Not Found", fmt.Sprintf("Order %s not found", orderID))
}

// ---- order handlers ----

func (h *Handler) listOrders(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	limit, offset := httpx.ParseLimitOffset(c, defaultPageLimit, maxPageLimit)

	orders, total, err := h.service.ListOrders(ctx, limit, offset)
	if err != nil {
		h.log.Errorf(ctx, "ListOrders failed err=%v", err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, listOrdersResponse{Success: true, Orders: orders, Total: total})
}

func (h *Handler) createOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf(ctx, "invalid order payload err=%v", err)
		abortError(c, http.StatusBadRequest, "Validation Error", "Request body is not a valid order")
		return
	}

	in := domain.NewOrderInput{
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, item.toDomain())
	}

	order, err := h.service.CreateOrder(ctx, in)
	if err != nil {
		h.log.Errorf(ctx, "CreateOrder failed err=%v", err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to create order")
		return
	}

	c.JSON(http.StatusOK, orderResponse{Success: true, Message: "Order created successfully", Order: order})
}

func (h *Handler) getOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed order_id=%s err=%v", id, err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("Failed to retrieve order %s", id))
		return
	}
	if order == nil {
		abortNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, orderResponse{Success: true, Message: "Order retrieved successfully", Order: order})
}

func (h *Handler) updateOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")

	var upd domain.OrderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.log.Warnf(ctx, "invalid update payload order_id=%s err=%v", id, err)
		abortError(c, http.StatusBadRequest, "Validation Error", "Request body is not a valid order update")
		return
	}

	order, err := h.service.UpdateOrder(ctx, id, upd)
	if err != nil {
		h.log.Errorf(ctx, "UpdateOrder failed order_id=%s err=%v", id, err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("Failed to update order %s", id))
		return
	}
	if order == nil {
		abortNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, orderResponse{Success: true, Message: "Order updated successfully", Order: order})
}

func (h *Handler) cancelOrder(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	existed, err := h.service.CancelOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "CancelOrder failed order_id=%s err=%v", id, err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("Failed to cancel order %s", id))
		return
	}
	if !existed {
		abortNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %s cancelled successfully", id),
	})
}

func (h *Handler) orderStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	order, err := h.service.GetOrder(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetOrder failed order_id=%s err=%v", id, err)
		abortError(c, http.StatusInternalServerError, "Internal Server Error", fmt.Sprintf("Failed to get order status for %s", id))
		return
	}
	if order == nil {
		abortNotFound(c, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"order_id":   order.ID,
		"status":     order.Status,
		"created_at": order.CreatedAt,
	})
}

// ---- service endpoints ----

// health — aggregates the catalog probe; a down catalog degrades the
// service instead of failing the endpoint.
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	catalogHealthy := h.catalog.Health(ctx)

	status := "healthy"
	code := http.StatusOK
	body := gin.H{
		"status":    status,
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC(),
		"dependencies": gin.H{
			"catalog_service": gin.H{
				"url":     h.catalog.BaseURL(),
				"healthy": catalogHealthy,
			},
		},
	}
	if !catalogHealthy {
		body["status"] = "degraded"
		body["message"] = "Some dependencies are unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, body)
}

func (h *Handler) apiInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "SpookyMart Order Processing Service",
		"version":     serviceVersion,
		"description": "Halloween ecommerce order management API",
		"endpoints": gin.H{
			"health": "GET /health",
			"orders": gin.H{
				"list":   "GET /api/orders",
				"create": "POST /api/orders",
				"get":    "GET /api/orders/{order_id}",
				"update": "PUT /api/orders/{order_id}",
				"cancel": "DELETE /api/orders/{order_id}",
				"status": "GET /api/orders/{order_id}/status",
			},
		},
	})
}
