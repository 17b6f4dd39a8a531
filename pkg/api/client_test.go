package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_GET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/me/top/tracks", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		require.Equal(t, "value", r.Header.Get("X-Test"))
		w.Write([]byte(`{"items":[{"id":"track1"}]}`))
	}))
	defer server.Close()

	resp, err := NewGenerator(server.URL+"/v1", nil).
		New("/me/top/%s", "tracks").
		Header("X-Test", "value").
		Query(Parameter{"limit": "20"}).
		GET(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, resp.Decode(&body))
	require.Len(t, body.Items, 1)
	require.Equal(t, "track1", body.Items[0].ID)
}

func TestResponse_DecodeInvalidStatus(t *testing.T) {
	resp := &Response{Code: http.StatusUnauthorized, RawBody: []byte(`{"error":"expired"}`)}

	var v map[string]any
	require.Error(t, resp.Decode(&v))
}

func TestParameter_Encode(t *testing.T) {
	p := Parameter{"q": "hello world", "a": "1"}
	require.Equal(t, "a=1&q=hello%20world", p.Encode())
}
