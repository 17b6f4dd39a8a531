package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/xcontext"
)

// StatusCodeResponse lets a response choose a success status other than 200.
type StatusCodeResponse interface {
	StatusCode() int
}

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// HTTPStatus returns the status code sent along with err.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest, errorx.Conflict, errorx.NotConnected:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	case errorx.NotImplemented:
		return http.StatusNotImplemented
	case errorx.Unavailable:
		return http.StatusServiceUnavailable
	case errorx.BadResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(ctx context.Context, w http.ResponseWriter) {
	if err := xcontext.Error(ctx); err != nil {
		writeJSON(ctx, w, HTTPStatus(err), newErrorResponse(err))
		return
	}

	// Nothing to write after a redirection.
	resp := xcontext.Response(ctx)
	if resp == nil {
		return
	}

	status := http.StatusOK
	if statusResp, ok := resp.(StatusCodeResponse); ok {
		status = statusResp.StatusCode()
	}

	writeJSON(ctx, w, status, newResponse(resp))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, resp any) {
	b, err := json.Marshal(resp)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal the response: %v", err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(newErrorResponse(errorx.New(errorx.BadResponse, "Cannot write the response")))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
