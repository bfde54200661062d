package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/me/taskplan/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondCreated writes a 201 response with the standard envelope.
func respondCreated(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusCreated, reqID, data, nil, nil)
}

// respondList writes a success response with a count.
func respondList(w http.ResponseWriter, reqID string, data any, total int) {
	respondJSON(w, http.StatusOK, reqID, data, &model.Pagination{Total: total, Limit: total}, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, nil, apiErr)
}

// respondSchedulerError maps scheduler errors onto API errors.
func respondSchedulerError(w http.ResponseWriter, reqID string, err error) {
	var ve *model.ValidationError
	var ce *model.CycleError
	switch {
	case errors.As(err, &ve):
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError(
			"Invalid task", model.FieldError{Field: ve.Field, Message: ve.Reason}))
	case errors.As(err, &ce):
		respondError(w, reqID, http.StatusConflict, &model.APIError{
			Code:    model.ErrCycleCode,
			Message: ce.Error(),
		})
	default:
		respondError(w, reqID, http.StatusInternalServerError, &model.APIError{
			Code:    model.ErrInternal,
			Message: err.Error(),
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
