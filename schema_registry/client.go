package schema_registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
)

const contentType = "application/vnd.schemaregistry.v1+json"

// Client talks to a Confluent Schema Registry over HTTP and caches what it
// learns. Schemas are immutable once registered, so cache entries never
// expire.
type Client struct {
	url        string
	httpClient *http.Client
	username   string
	password   string

	schemaCache      map[int]*Schema
	schemaCacheMutex sync.RWMutex

	idCache      map[string]int
	idCacheMutex sync.RWMutex

	observer observability.Observer
	log      logger.Logger
}

// NewClient returns a client for cfg.URL. It does not contact the registry.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		url:         strings.TrimRight(cfg.URL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		username:    cfg.Username,
		password:    cfg.Password,
		schemaCache: make(map[int]*Schema),
		idCache:     make(map[string]int),
		log:         logger.NewNopLogger(),
	}, nil
}

// WithObserver sets the observer and returns c for chaining.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithLogger sets the logger and returns c for chaining.
func (c *Client) WithLogger(log logger.Logger) *Client {
	if log != nil {
		c.log = log
	}
	return c
}

// GetSchemaByID implements Registry.
func (c *Client) GetSchemaByID(ctx context.Context, id int) (*Schema, error) {
	start := time.Now()
	subResource := strconv.Itoa(id)

	c.schemaCacheMutex.RLock()
	cached, ok := c.schemaCache[id]
	c.schemaCacheMutex.RUnlock()
	if ok {
		c.observeOperation("get_schema_by_id", "registry", subResource, time.Since(start), nil, map[string]interface{}{
			"cache_hit": true,
		})
		return cached, nil
	}

	var schema Schema
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schemas/ids/%d", id), nil, &schema)
	if err != nil {
		c.observeOperation("get_schema_by_id", "registry", subResource, time.Since(start), err, map[string]interface{}{
			"cache_hit":   false,
			"status_code": status,
		})
		c.log.WarnWithContext(ctx, "schema lookup failed", err, map[string]interface{}{"schema_id": id})
		return nil, err
	}
	schema.ID = id

	c.schemaCacheMutex.Lock()
	c.schemaCache[id] = &schema
	c.schemaCacheMutex.Unlock()

	c.observeOperation("get_schema_by_id", "registry", subResource, time.Since(start), nil, map[string]interface{}{
		"cache_hit":   false,
		"schema_type": schema.SchemaType(),
	})
	return &schema, nil
}

// RegisterSchema implements Registry.
func (c *Client) RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error) {
	start := time.Now()

	cacheKey := subject + ":" + schemaType + ":" + schema
	c.idCacheMutex.RLock()
	id, ok := c.idCache[cacheKey]
	c.idCacheMutex.RUnlock()
	if ok {
		c.observeOperation("register_schema", subject, strconv.Itoa(id), time.Since(start), nil, map[string]interface{}{
			"cache_hit":   true,
			"schema_type": schemaType,
		})
		return id, nil
	}

	req := Schema{Schema: schema}
	if schemaType != SchemaTypeAvro {
		req.Type = schemaType
	}

	var result struct {
		ID int `json:"id"`
	}
	status, err := c.do(ctx, http.MethodPost, "/subjects/"+url.PathEscape(subject)+"/versions", req, &result)
	if err != nil {
		c.observeOperation("register_schema", subject, "", time.Since(start), err, map[string]interface{}{
			"cache_hit":   false,
			"schema_type": schemaType,
			"status_code": status,
		})
		return 0, err
	}

	c.idCacheMutex.Lock()
	c.idCache[cacheKey] = result.ID
	c.idCacheMutex.Unlock()

	c.log.InfoWithContext(ctx, "registered schema", nil, map[string]interface{}{
		"subject":     subject,
		"schema_id":   result.ID,
		"schema_type": schemaType,
	})
	c.observeOperation("register_schema", subject, strconv.Itoa(result.ID), time.Since(start), nil, map[string]interface{}{
		"cache_hit":   false,
		"schema_type": schemaType,
	})
	return result.ID, nil
}

// do sends one request and decodes a 200 response into out. It returns the
// HTTP status, or 0 when no response arrived.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", contentType)
	if in != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req) //nolint:gosec
	if err != nil {
		return 0, fmt.Errorf("schema registry request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}
