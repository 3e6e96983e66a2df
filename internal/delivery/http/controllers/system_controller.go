package controllers

import (
	"net/http"
	"time"

	"ordermail/internal/delivery/http/helpers"
)

// AvailableEndpoints lists every route the service answers, in the form reported by the 404 responder.
var AvailableEndpoints = []string{
	"GET /health",
	"POST /api/send-order-created",
	"POST /api/send-order-shipped",
	"POST /api/test-email",
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NotFoundResponse is the response body for unmatched routes.
type NotFoundResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

// SystemController serves the liveness probe and the unmatched-route responder.
type SystemController struct {
	now func() time.Time
}

func NewSystemController() *SystemController {
	return &SystemController{now: time.Now}
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "Mail server is running",
		Timestamp: c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// NotFound answers any request no other route matched.
func (c *SystemController) NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusNotFound, NotFoundResponse{
		Error:              "Endpoint not found",
		AvailableEndpoints: AvailableEndpoints,
	})
}
