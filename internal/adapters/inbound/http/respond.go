package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clusteriq/assistant/internal/domain"
)

// ErrorCode identifies the failure class of an API error response.
type ErrorCode string

const (
	ErrorCode_BadRequest         ErrorCode = "BAD_REQUEST"
	ErrorCode_NotFound           ErrorCode = "NOT_FOUND"
	ErrorCode_UnableToAnswer     ErrorCode = "UNABLE_TO_ANSWER"
	ErrorCode_BackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrorCode_BackendQueryError  ErrorCode = "BACKEND_QUERY_ERROR"
	ErrorCode_InternalError      ErrorCode = "INTERNAL_ERROR"
)

type errorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type errorResp struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err errorResp) {
	statusCode := http.StatusInternalServerError
	switch err.Error.Code {
	case ErrorCode_BadRequest:
		statusCode = http.StatusBadRequest
	case ErrorCode_NotFound:
		statusCode = http.StatusNotFound
	case ErrorCode_UnableToAnswer:
		statusCode = http.StatusUnprocessableEntity
	case ErrorCode_BackendUnavailable, ErrorCode_BackendQueryError:
		statusCode = http.StatusBadGateway
	}
	respondJSON(w, statusCode, err)
}

func toError(err error) errorResp {
	var validationErr *domain.ValidationErr
	var notFoundErr *domain.NotFoundErr
	var budgetErr *domain.BudgetExceededErr
	var unavailableErr *domain.BackendUnavailableErr
	var queryErr *domain.BackendQueryErr

	switch {
	case errors.As(err, &validationErr):
		return errorResp{Error: errorBody{Code: ErrorCode_BadRequest, Message: validationErr.Error()}}
	case errors.As(err, &notFoundErr):
		return errorResp{Error: errorBody{Code: ErrorCode_NotFound, Message: notFoundErr.Error()}}
	case errors.As(err, &budgetErr):
		return errorResp{Error: errorBody{Code: ErrorCode_UnableToAnswer, Message: budgetErr.Error()}}
	case errors.As(err, &unavailableErr):
		return errorResp{Error: errorBody{Code: ErrorCode_BackendUnavailable, Message: "cluster inventory backend is unavailable"}}
	case errors.As(err, &queryErr):
		return errorResp{Error: errorBody{Code: ErrorCode_BackendQueryError, Message: "cluster inventory backend query failed"}}
	default:
		return errorResp{Error: errorBody{Code: ErrorCode_InternalError, Message: "internal error"}}
	}
}
