// Package remote is a thin client for the upstream products REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/metrics"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const ProductsPath = "/api/v1/products"

const (
	msgListFailed   = "Error al obtener productos"
	msgGetFailed    = "Producto no encontrado"
	msgCreateFailed = "Error al crear producto"
	msgUpdateFailed = "Error al actualizar producto"
	msgDeleteFailed = "Error al eliminar producto"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient builds a client whose transport is traced and counted. timeout
// bounds each call; zero uses utils.DefaultRequestTimeout.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(metrics.InstrumentRoundTripper(http.DefaultTransport)),
		},
		timeout: timeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProductsURL is the listing endpoint, also used for reachability checks.
func (c *Client) ProductsURL() string {
	return c.baseURL + ProductsPath
}

func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	if err := c.do(ctx, http.MethodGet, ProductsPath, nil, &products, msgListFailed, false); err != nil {
		return nil, err
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

func (c *Client) Get(ctx context.Context, id int64) (models.Product, error) {
	var product models.Product

	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &product, msgGetFailed, false); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func (c *Client) Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error) {
	var product models.Product

	if err := c.do(ctx, http.MethodPost, ProductsPath, req, &product, msgCreateFailed, true); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

func (c *Client) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error) {
	var product models.Product

	if err := c.do(ctx, http.MethodPatch, productPath(id), req, &product, msgUpdateFailed, true); err != nil {
		return models.Product{}, err
	}

	return product, nil
}

// Delete ignores the plain-text confirmation body the API sends back.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, msgDeleteFailed, false)
}

func productPath(id int64) string {
	return ProductsPath + "/" + strconv.FormatInt(id, 10)
}

// do sends one request. When serverMessage is set, a failed response's JSON
// "message" replaces the fallback text.
func (c *Client) do(ctx context.Context, method, path string, body, dest any, fallback string, serverMessage bool) error {
	reqCtx, cancel := utils.WithRequestTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.InternalError(fallback).WithError(fmt.Errorf("encoding request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.InternalError(fallback).WithError(err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := slog.Default().With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Upstream request failed", slog.Any("error", err))
		return appErrors.RemoteError(fallback, 0).WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fallback
		if serverMessage {
			message = errorMessage(resp.Body, fallback)
		}

		logger.Warn("Upstream returned an error", slog.Int("status", resp.StatusCode), slog.String("message", message))

		return appErrors.RemoteError(message, resp.StatusCode).
			WithDetail(fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		logger.Error("Failed to decode upstream response", slog.Any("error", err))
		return appErrors.RemoteError(fallback, http.StatusBadGateway).WithError(fmt.Errorf("decoding response: %w", err))
	}

	logger.Debug("Upstream request completed", slog.Int("status", resp.StatusCode))

	return nil
}

func errorMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&payload); err != nil {
		return fallback
	}

	if strings.TrimSpace(payload.Message) == "" {
		return fallback
	}

	return payload.Message
}
