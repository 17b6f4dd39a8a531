package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lyricroom/backend/pkg/errorx"
	"github.com/lyricroom/backend/pkg/router"
	"github.com/lyricroom/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Limit  int      `json:"limit"`
	Active bool     `json:"active"`
	Tags   []string `json:"tags"`
}

type echoResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Limit  int      `json:"limit"`
	Active bool     `json:"active"`
	Tags   []string `json:"tags"`
	UserID string   `json:"user_id"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func (createdResponse) StatusCode() int {
	return http.StatusCreated
}

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{
		ID:     req.ID,
		Name:   req.Name,
		Limit:  req.Limit,
		Active: req.Active,
		Tags:   req.Tags,
		UserID: xcontext.RequestUserID(ctx),
	}, nil
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func Test_Router_BindsBodyQueryAndPath(t *testing.T) {
	r := router.New(context.Background())
	router.POST(r, "/items/{id}", echo)

	w, resp := do(t, r.Handler(nil), http.MethodPost, "/items/abc?limit=5&active=true&tags=a&tags=b", `{"name":"song","id":"other"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(0), resp.Code)

	var data echoResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, "abc", data.ID)
	require.Equal(t, "song", data.Name)
	require.Equal(t, 5, data.Limit)
	require.True(t, data.Active)
	require.Equal(t, []string{"a", "b"}, data.Tags)
}

func Test_Router_InvalidBody(t *testing.T) {
	r := router.New(context.Background())
	router.POST(r, "/items/{id}", echo)

	w, resp := do(t, r.Handler(nil), http.MethodPost, "/items/abc", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func Test_Router_InvalidQuery(t *testing.T) {
	r := router.New(context.Background())
	router.GET(r, "/items", echo)

	w, resp := do(t, r.Handler(nil), http.MethodGet, "/items?limit=many", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func Test_Router_StatusCodeResponse(t *testing.T) {
	r := router.New(context.Background())
	router.POST(r, "/items", func(ctx context.Context, req *echoRequest) (*createdResponse, error) {
		return &createdResponse{ID: "new"}, nil
	})

	w, resp := do(t, r.Handler(nil), http.MethodPost, "/items", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"id":"new"}`, string(resp.Data))
}

func Test_Router_ErrorStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: errorx.New(errorx.NotFound, "missing"), status: http.StatusNotFound},
		{name: "bad request", err: errorx.New(errorx.BadRequest, "bad"), status: http.StatusBadRequest},
		{name: "conflict", err: errorx.New(errorx.Conflict, "busy"), status: http.StatusBadRequest},
		{name: "not connected", err: errorx.New(errorx.NotConnected, "no"), status: http.StatusBadRequest},
		{name: "unauthenticated", err: errorx.New(errorx.Unauthenticated, "who"), status: http.StatusUnauthorized},
		{name: "permission denied", err: errorx.New(errorx.PermissionDenied, "no"), status: http.StatusForbidden},
		{name: "already exists", err: errorx.New(errorx.AlreadyExists, "dup"), status: http.StatusConflict},
		{name: "unknown", err: errorx.Unknown, status: http.StatusInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			r := router.New(context.Background())
			router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
				return nil, tt.err
			})

			w, resp := do(t, r.Handler(nil), http.MethodGet, "/fail", "")
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.err.Error(), resp.Error)
			require.NotZero(t, resp.Code)
		})
	}
}

func Test_Router_RawErrorIsHidden(t *testing.T) {
	r := router.New(context.Background())
	router.GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	w, resp := do(t, r.Handler(nil), http.MethodGet, "/fail", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}

func Test_Router_Middlewares(t *testing.T) {
	r := router.New(context.Background())

	closed := []string{}
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, xcontext.RequestUserID(ctx))
	})

	authorized := r.Branch()
	authorized.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("X-User") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "login")
		}

		return xcontext.WithRequestUserID(ctx, "user-a"), nil
	})
	router.GET(authorized, "/me", echo)

	// Middlewares of a branch do not leak into its parent.
	router.GET(r, "/public", echo)

	h := r.Handler(nil)

	w, _ := do(t, h, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User", "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":"user-a"`)

	w, _ = do(t, h, http.MethodGet, "/public", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, []string{"", "user-a", ""}, closed)
}

func Test_Router_AfterCanDropResponse(t *testing.T) {
	r := router.New(context.Background())
	r.After(func(ctx context.Context) (context.Context, error) {
		w := xcontext.HTTPWriter(ctx)
		http.Redirect(w, xcontext.HTTPRequest(ctx), "https://example.com", http.StatusSeeOther)
		return xcontext.WithResponse(ctx, nil), nil
	})
	router.GET(r, "/go", echo)

	req := httptest.NewRequest(http.MethodGet, "/go", nil)
	w := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "https://example.com", w.Header().Get("Location"))
	require.NotContains(t, w.Body.String(), `"code"`)
}

func Test_Router_BaseContextValues(t *testing.T) {
	ctx := xcontext.WithRequestUserID(context.Background(), "from-base")
	r := router.New(ctx)
	router.GET(r, "/me", echo)

	w, resp := do(t, r.Handler(nil), http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(resp.Data), "from-base")
}
