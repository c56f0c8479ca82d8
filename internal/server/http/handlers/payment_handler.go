package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/devxkamlesh/dailyos-payments/internal/domain/errors"
	"github.com/devxkamlesh/dailyos-payments/internal/domain/model"
	"github.com/devxkamlesh/dailyos-payments/internal/server/http/dto"
)

// WebhookSignatureHeader carries the gateway's webhook body signature.
const WebhookSignatureHeader = "X-Razorpay-Signature"

const maxWebhookBody = 1 << 20

// PaymentHandler manages checkout, verification and webhook endpoints.
type PaymentHandler struct {
	facade PaymentFacade
	logger *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, logger: logger}
}

// Create handles POST /api/payments/orders.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), model.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		var gwErr *domainErrors.GatewayError
		switch {
		case errors.Is(err, domainErrors.ErrUnauthorized):
			abortWithError(c, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, domainErrors.ErrInvalidRequest):
			abortWithError(c, http.StatusBadRequest, "amount, currency and receipt are required")
		case errors.As(err, &gwErr):
			abortWithError(c, http.StatusBadGateway, gwErr.Description)
		default:
			h.logger.Error("create order failed", slog.String("error", err.Error()))
			abortWithError(c, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	c.JSON(http.StatusOK, dto.CreateOrderResponse{
		Success: true,
		Order: dto.OrderSummary{
			ID:       order.OrderID,
			Amount:   order.Amount,
			Currency: order.Currency,
			Receipt:  order.Receipt,
		},
	})
}

// List handles GET /api/payments/orders.
func (h *PaymentHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Verify handles POST /api/payments/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.facade.VerifyPayment(c.Request.Context(), CurrentUserID(c), model.VerifyRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		h.writeVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Success:          true,
		OrderID:          result.Order.OrderID,
		Status:           string(result.Order.Status),
		AlreadyProcessed: result.AlreadyProcessed,
	})
}

// Webhook handles POST /api/payments/webhook.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil || len(body) == 0 {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.facade.HandleWebhook(c.Request.Context(), body, c.GetHeader(WebhookSignatureHeader)); err != nil {
		if errors.Is(err, domainErrors.ErrSignatureMismatch) {
			abortWithError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.writeVerificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WebhookResponse{Success: true})
}

func (h *PaymentHandler) writeVerificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		abortWithError(c, http.StatusBadRequest, "order_id, payment_id and signature are required")
	case errors.Is(err, domainErrors.ErrSignatureMismatch):
		abortWithError(c, http.StatusBadRequest, "payment verification failed")
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "order not found")
	default:
		h.logger.Error("payment verification failed", slog.String("error", err.Error()))
		abortWithError(c, http.StatusInternalServerError, "payment verification failed")
	}
}

func toOrderResponse(order model.PaymentOrder) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.OrderID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Receipt:    order.Receipt,
		Status:     string(order.Status),
		PaymentID:  order.PaymentID,
		CreatedAt:  order.CreatedAt,
		VerifiedAt: order.VerifiedAt,
	}
}
