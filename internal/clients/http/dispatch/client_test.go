package dispatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"Friendly and calm"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/api/", srv.Client())
	require.NoError(t, err)

	value, err := client.Fetch(context.Background(), "description", "get", 42)
	require.NoError(t, err)
	assert.Equal(t, "Friendly and calm", value)
	assert.Equal(t, "/api/description/get/42", gotPath)
}

func TestClient_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "description", "get", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "description", "get", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("dispatch.local", nil)
	assert.Error(t, err)

	_, err = NewClient(" ", nil)
	assert.Error(t, err)
}
