package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edubot/edubot/internal/auth"
	"github.com/edubot/edubot/internal/chat"
	"github.com/edubot/edubot/internal/history"
	"github.com/edubot/edubot/internal/llm"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/lock"
	"github.com/edubot/edubot/internal/store"
)

// apiError is an error with the status and code the client sees. Message,
// when set, replaces Err.Error() in the response body.
type apiError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *apiError) Unwrap() error { return e.Err }

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondError(c *gin.Context, e *apiError) {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
		if e.Err != nil {
			msg = e.Err.Error()
		}
	}
	_ = c.Error(e)
	c.AbortWithStatusJSON(e.Status, errorBody{Error: msg, Code: e.Code})
}

// classify maps a service error to its response. lang picks the language of
// user-facing failure text.
func classify(err error, lang locale.Language) *apiError {
	var ae *apiError
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, chat.ErrInvalidRequest):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: locale.T(lang, locale.KeyValidationFailed), Err: err}
	case errors.Is(err, history.ErrInvalidInput), errors.Is(err, auth.ErrMissingFields):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Err: err}
	case errors.Is(err, history.ErrNotUserMessage):
		return &apiError{Status: http.StatusForbidden, Code: "forbidden", Err: err}
	case errors.Is(err, store.ErrNotFound):
		return &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "session or message not found", Err: err}
	case errors.Is(err, store.ErrDuplicate):
		return &apiError{Status: http.StatusConflict, Code: "duplicate", Message: "username or email already in use", Err: err}
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Err: err}
	case errors.Is(err, lock.ErrBusy):
		return &apiError{Status: http.StatusConflict, Code: "busy", Message: locale.T(lang, locale.KeyServiceBusy), Err: err}
	case errors.Is(err, store.ErrStaleVersion):
		return &apiError{Status: http.StatusConflict, Code: "conflict", Message: locale.T(lang, locale.KeyServiceBusy), Err: err}
	case isGatewayError(err):
		status := llm.HTTPStatus(err)
		key := locale.KeyServiceError
		if status == http.StatusGatewayTimeout {
			key = locale.KeyServiceTimeout
		}
		return &apiError{Status: status, Code: "upstream", Message: locale.T(lang, key), Err: err}
	default:
		return &apiError{Status: http.StatusInternalServerError, Code: "internal", Message: locale.T(lang, locale.KeyServiceError), Err: err}
	}
}

func isGatewayError(err error) bool {
	var (
		rl      *llm.ErrRateLimit
		inv     *llm.ErrInvalidResponse
		unavail *llm.ErrProviderUnavailable
		maxTok  *llm.ErrMaxTokensExceeded
		to      *llm.ErrTimeout
	)
	return errors.As(err, &rl) || errors.As(err, &inv) || errors.As(err, &unavail) ||
		errors.As(err, &maxTok) || errors.As(err, &to)
}
