package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTEITestServer returns a server that answers /embed with one vector
// per input text.
func newTEITestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embed", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Inputs   interface{} `json:"inputs"`
			Truncate bool        `json:"truncate"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		count := 1
		if arr, ok := req.Inputs.([]interface{}); ok {
			count = len(arr)
		}

		vectors := make([][]float32, count)
		for i := range vectors {
			vectors[i] = []float32{0.1, 0.2, 0.3}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(vectors)
	}))
}

func TestNewTEIService(t *testing.T) {
	tests := []struct {
		name    string
		config  TEIConfig
		wantErr bool
	}{
		{
			name:    "valid configuration",
			config:  TEIConfig{BaseURL: "http://localhost:8080", Model: "BAAI/bge-small-en-v1.5"},
			wantErr: false,
		},
		{
			name:    "empty base URL",
			config:  TEIConfig{Model: "BAAI/bge-small-en-v1.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewTEIService(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestTEIService_EmbedDocuments(t *testing.T) {
	server := newTEITestServer(t)
	defer server.Close()

	svc, err := NewTEIService(TEIConfig{BaseURL: server.URL, Model: "BAAI/bge-small-en-v1.5"})
	require.NoError(t, err)

	vectors, err := svc.EmbedDocuments(context.Background(), []string{"first text", "second text"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vectors[0])
}

func TestTEIService_EmbedDocuments_EmptyInput(t *testing.T) {
	svc, err := NewTEIService(TEIConfig{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	_, err = svc.EmbedDocuments(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = svc.EmbedDocuments(context.Background(), []string{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTEIService_EmbedQuery(t *testing.T) {
	server := newTEITestServer(t)
	defer server.Close()

	svc, err := NewTEIService(TEIConfig{BaseURL: server.URL, Model: "BAAI/bge-small-en-v1.5"})
	require.NoError(t, err)

	vector, err := svc.EmbedQuery(context.Background(), "what drives cost savings")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestTEIService_EmbedQuery_EmptyInput(t *testing.T) {
	svc, err := NewTEIService(TEIConfig{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	_, err = svc.EmbedQuery(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestTEIService_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc, err := NewTEIService(TEIConfig{BaseURL: server.URL, Model: "BAAI/bge-small-en-v1.5"})
	require.NoError(t, err)

	_, err = svc.EmbedDocuments(context.Background(), []string{"text"})
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
	assert.Contains(t, err.Error(), "503")
}

func TestTEIService_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	svc, err := NewTEIService(TEIConfig{BaseURL: server.URL, Model: "BAAI/bge-small-en-v1.5"})
	require.NoError(t, err)

	_, err = svc.EmbedQuery(context.Background(), "query")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmbeddingFailed))
}

func TestTEIService_ContextCancellation(t *testing.T) {
	server := newTEITestServer(t)
	defer server.Close()

	svc, err := NewTEIService(TEIConfig{BaseURL: server.URL, Model: "BAAI/bge-small-en-v1.5"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.EmbedDocuments(ctx, []string{"text"})
	assert.Error(t, err)
}
