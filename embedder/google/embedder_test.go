package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/answerbot/embedder"
	"google.golang.org/api/option"
)

type redirect struct {
	target *url.URL
}

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestEmbedder(t *testing.T, srv *httptest.Server) embedder.Embedder {
	t.Helper()

	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return NewEmbedder(
		embedder.WithApiKey("test"),
		embedder.WithModel("text-embedding-004"),
		WithClientOptions(option.WithHTTPClient(&http.Client{Transport: redirect{target: target}})),
	)
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/text-embedding-004:embedContent"), r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "models/text-embedding-004", req["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedding":{"values":[0.5,0.25]}}`))
	}))
	defer srv.Close()

	vec, err := newTestEmbedder(t, srv).Embed(context.Background(), "deductible")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}

func TestEmbed_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestEmbedder(t, srv).Embed(context.Background(), "deductible")
	require.Error(t, err)
}
