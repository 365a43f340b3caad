package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DoJSON_SendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/CreateWorker", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ali", body["fullname"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 2*time.Second)
	resp, err := client.DoJSON(context.Background(), http.MethodPost, "/CreateWorker", map[string]string{"fullname": "Ali"}, "admin-token")

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"id":1}`, string(resp.Body))
}

func TestClient_DoJSON_NoTokenNoAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, time.Second).DoJSON(context.Background(), http.MethodGet, "/GetCommands", nil, "")

	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, "boom", string(resp.Body))
}

func TestClient_DoJSON_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 50*time.Millisecond).DoJSON(context.Background(), http.MethodGet, "/health", nil, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}
