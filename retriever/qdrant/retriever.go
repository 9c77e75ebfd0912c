package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/w-h-a/answerbot/embedder"
	"github.com/w-h-a/answerbot/retriever"
	getsafe "github.com/w-h-a/answerbot/util/get_safe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type qdrantRetriever struct {
	options  retriever.Options
	client   *http.Client
	embedder embedder.Embedder
}

// Search runs a vector search. Semantic captions and the semantic ranker
// have no qdrant equivalent and are ignored.
func (r *qdrantRetriever) Search(ctx context.Context, query retriever.Query, opts ...retriever.SearchOption) ([]retriever.Record, error) {
	options := retriever.NewSearchOptions(opts...)

	vector := options.Embedding
	if options.Mode == "Text" {
		vector = nil
	}

	if len(vector) == 0 && r.embedder != nil {
		if text, ok := options.UseText(query); ok && len(text) > 0 {
			vec, err := r.embedder.Embed(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("embed query: %w", err)
			}
			vector = vec
		}
	}

	if len(vector) == 0 {
		return []retriever.Record{}, nil
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        options.Top,
		"with_payload": true,
	}

	if len(options.ExcludeCategory) > 0 {
		req["filter"] = map[string]any{
			"must_not": []map[string]any{
				{
					"key":   "category",
					"match": map[string]any{"value": options.ExcludeCategory},
				},
			},
		}
	}

	var rsp qdrantEnvelope[[]qdrantPointResult]

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(r.options.Collection))

	if err := r.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return nil, err
	}

	if rsp.Status.State == "error" {
		return nil, fmt.Errorf("qdrant search: %s", rsp.Status.Error)
	}

	records := make([]retriever.Record, 0, len(rsp.Result))

	for _, point := range rsp.Result {
		records = append(records, retriever.Record{
			Title:    getsafe.String(point.Payload, "title"),
			Content:  getsafe.String(point.Payload, "content"),
			Category: getsafe.String(point.Payload, "category"),
			Score:    float32(point.Score),
		})
	}

	return records, nil
}

func (r *qdrantRetriever) do(ctx context.Context, method string, path string, req any, rsp any) error {
	u := r.options.Location + path

	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	if len(r.options.ApiKey) > 0 {
		request.Header.Set("api-key", r.options.ApiKey)
	}

	response, err := r.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("qdrant http %d: %s", response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}

func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	if len(options.Location) == 0 || len(options.Collection) == 0 {
		panic("missing location or collection for qdrant retriever")
	}

	r := &qdrantRetriever{
		options: options,
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	if e, ok := EmbedderFrom(options.Context); ok {
		r.embedder = e
	}

	return r
}
