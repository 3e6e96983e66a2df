package helpers

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse is the body of a successful send.
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

// ErrorResponse is the body of every failed request.
// Details carries the underlying cause where one is available.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error         string   `json:"error"`
	Details       string   `json:"details,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSONSuccess writes a 200 SuccessResponse for a delivered message.
func WriteJSONSuccess(w http.ResponseWriter, message, messageID string) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: message, MessageID: messageID})
}

// WriteJSONError writes an ErrorResponse with the given status, message, and optional details.
func WriteJSONError(w http.ResponseWriter, statusCode int, message, details string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}
