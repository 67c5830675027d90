package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tidwall/gjson"
)

var (
	cmsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centerfinder_cms_requests_total",
		Help: "GraphQL requests sent to the CMS by outcome",
	}, []string{"outcome"})
	cmsCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "centerfinder_cms_cache_hits_total",
		Help: "GraphQL responses served from the response cache",
	})
)

type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("cms http error: %d", e.Status)
}

type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "cms graphql errors: " + strings.Join(e.Messages, "; ")
}

type Client struct {
	Endpoint string
	HTTP     *http.Client
	Cache    Cache
	CacheTTL time.Duration
}

func NewClient(endpoint string, timeout time.Duration, cache Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: timeout},
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

const keyPrefix = "cms:"

func cacheKey(body []byte) string {
	sum := sha256.Sum256(body)
	return keyPrefix + hex.EncodeToString(sum[:12])
}

// Query posts the query and returns the data object of the response.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (gjson.Result, error) {
	body, err := jsoncompat.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encode query: %w", err)
	}
	key := cacheKey(body)
	if c.Cache != nil {
		if data, ok := c.Cache.Get(ctx, key); ok {
			cmsCacheHits.Inc()
			return gjson.ParseBytes(data), nil
		}
	}

	data, err := c.post(ctx, body)
	if err != nil {
		cmsRequests.WithLabelValues("error").Inc()
		return gjson.Result{}, err
	}
	cmsRequests.WithLabelValues("ok").Inc()
	if c.Cache != nil && c.CacheTTL > 0 {
		c.Cache.Set(ctx, key, []byte(data.Raw), c.CacheTTL)
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, body []byte) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("cms request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read cms response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return gjson.Result{}, &HTTPError{Status: res.StatusCode, Body: string(raw)}
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("cms response is not valid json")
	}
	parsed := gjson.ParseBytes(raw)
	if errs := parsed.Get("errors"); errs.IsArray() && len(errs.Array()) > 0 {
		messages := make([]string, 0)
		for _, e := range errs.Array() {
			if msg := e.Get("message").String(); msg != "" {
				messages = append(messages, msg)
			} else {
				messages = append(messages, e.Raw)
			}
		}
		return gjson.Result{}, &GraphQLError{Messages: messages}
	}
	return parsed.Get("data"), nil
}
