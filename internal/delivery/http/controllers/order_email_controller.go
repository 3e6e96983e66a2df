package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"ordermail/internal/delivery/http/helpers"
	"ordermail/internal/domain"
)

// OrderCreatedRequest is the request body for POST /api/send-order-created.
type OrderCreatedRequest struct {
	domain.OrderPayload
}

// MissingFields implements helpers.Validator.
func (r *OrderCreatedRequest) MissingFields() []string {
	return r.OrderPayload.MissingForCreated()
}

// OrderShippedRequest is the request body for POST /api/send-order-shipped.
type OrderShippedRequest struct {
	OrderData    *domain.OrderPayload `json:"orderData"`
	ShippingInfo *domain.ShippingInfo `json:"shippingInfo"`
}

// MissingFields implements helpers.Validator.
func (r *OrderShippedRequest) MissingFields() []string {
	return domain.MissingForShipped(r.OrderData, r.ShippingInfo)
}

// OrderEmailController serves the order notification endpoints.
type OrderEmailController struct {
	logger  *slog.Logger
	Service domain.OrderEmailService
}

// NewOrderEmailController returns a controller delivering mail through svc.
func NewOrderEmailController(logger *slog.Logger, svc domain.OrderEmailService) *OrderEmailController {
	return &OrderEmailController{logger: logger, Service: svc}
}

// SendOrderCreated godoc
// @Summary Notify the admin about a new order
// @Description Renders the orderCreated template and sends it to the configured admin address.
// @Tags orders
// @Accept json
// @Produce json
// @Param body body OrderCreatedRequest true "Order state"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "missing fields or invalid input"
// @Failure 500 {object} helpers.ErrorResponse "render or send failure"
// @Router /api/send-order-created [post]
func (c *OrderEmailController) SendOrderCreated(w http.ResponseWriter, r *http.Request) {
	var req OrderCreatedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.SendOrderCreated(r.Context(), &req.OrderPayload)
	if err != nil {
		c.writeServiceError(w, "Failed to send order created email", err)
		return
	}
	helpers.WriteJSONSuccess(w, "Order created email sent successfully", id)
}

// SendOrderShipped godoc
// @Summary Notify the customer that the order was shipped
// @Description Renders the orderShipped template and sends it to the customer email resolved from the order.
// @Tags orders
// @Accept json
// @Produce json
// @Param body body OrderShippedRequest true "Order state and carrier data"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "missing fields or invalid input"
// @Failure 500 {object} helpers.ErrorResponse "render or send failure"
// @Router /api/send-order-shipped [post]
func (c *OrderEmailController) SendOrderShipped(w http.ResponseWriter, r *http.Request) {
	var req OrderShippedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.SendOrderShipped(r.Context(), req.OrderData, req.ShippingInfo)
	if err != nil {
		c.writeServiceError(w, "Failed to send order shipped email", err)
		return
	}
	helpers.WriteJSONSuccess(w, "Order shipped email sent successfully", id)
}

// SendTestEmail godoc
// @Summary Send a relay test message
// @Description All fields are optional; the recipient defaults to the admin address.
// @Tags system
// @Accept json
// @Produce json
// @Param body body domain.TestEmailRequest false "Optional overrides"
// @Success 200 {object} helpers.SuccessResponse
// @Failure 500 {object} helpers.ErrorResponse "send failure"
// @Router /api/test-email [post]
func (c *OrderEmailController) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req domain.TestEmailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	id, err := c.Service.SendTestEmail(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, "Failed to send test email", err)
		return
	}
	helpers.WriteJSONSuccess(w, "Test email sent successfully", id)
}

// writeServiceError maps service errors to responses. Caller mistakes are 400s
// and not logged as faults; everything else is a 500 carrying the cause.
func (c *OrderEmailController) writeServiceError(w http.ResponseWriter, failMsg string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.logger.Debug("rejected request", "missing_fields", verr.Fields)
		helpers.WriteMissingFields(w, verr.Fields)
	case errors.Is(err, domain.ErrInvalidInput):
		c.logger.Debug("rejected request", "error", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, domain.ErrTemplateNotFound):
		c.logger.Error("email template missing from deployment", "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, failMsg, err.Error())
	default:
		c.logger.Error(failMsg, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, failMsg, err.Error())
	}
}
