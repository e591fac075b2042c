// Package catastro provides a client for the Dirección General del Catastro
// OVC Callejero REST services.
package catastro

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/catastro-cli/internal/resilience"
)

// Default service endpoints. The Codigos host serves the lookups keyed by
// official DGC/INE codes instead of names.
const (
	DefaultBaseURL        = "http://ovc.catastro.meh.es/OVCServWeb/OVCWcfCallejero/COVCCallejero.svc/rest"
	DefaultCodigosBaseURL = "http://ovc.catastro.meh.es/OVCServWeb/OVCWcfCallejero/COVCCallejeroCodigos.svc/rest"
)

// logPreviewLimit bounds how much of the raw XML body is logged per call.
const logPreviewLimit = 1000

// Client performs one GET per lookup against the OVC services. It never
// retries on its own: the service's usage limits make blind retries
// undesirable, and a lookup is a pure read the caller can safely re-issue.
type Client interface {
	// Call invokes an operation on the Callejero endpoint and returns the
	// raw XML body.
	Call(ctx context.Context, op string, params url.Values) ([]byte, error)
	// CallCodigos invokes an operation on the CallejeroCodigos endpoint.
	CallCodigos(ctx context.Context, op string, params url.Values) ([]byte, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom Callejero base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithCodigosBaseURL sets a custom CallejeroCodigos base URL (for testing).
func WithCodigosBaseURL(u string) Option {
	return func(c *httpClient) {
		c.codigosBaseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithRateLimit replaces the default limiter shared by both endpoints.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	baseURL        string
	codigosBaseURL string
	userAgent      string
	http           *http.Client
	limiter        *rate.Limiter
}

// NewClient creates an OVC client with sane defaults: 30s timeout and a
// 5 req/s limiter honoring the service's published usage limits.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:        DefaultBaseURL,
		codigosBaseURL: DefaultCodigosBaseURL,
		userAgent:      "catastro-cli/1.0",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Call(ctx context.Context, op string, params url.Values) ([]byte, error) {
	return c.do(ctx, c.baseURL, op, params)
}

func (c *httpClient) CallCodigos(ctx context.Context, op string, params url.Values) ([]byte, error) {
	return c.do(ctx, c.codigosBaseURL, op, params)
}

func (c *httpClient) do(ctx context.Context, base, op string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "catastro: rate limiter wait")
	}

	reqURL := base + "/" + op
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "catastro: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	zap.L().Info("consulta catastro",
		zap.String("operacion", op),
		zap.String("url", reqURL),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Error("catastro request failed",
			zap.String("operacion", op),
			zap.Error(err),
		)
		return nil, eris.Wrapf(err, "catastro: %s", op)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "catastro: %s: read body", op)
	}

	zap.L().Debug("respuesta catastro",
		zap.String("operacion", op),
		zap.Int("status", resp.StatusCode),
		zap.String("body", preview(body)),
	)

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("catastro: %s: unexpected status %d", op, resp.StatusCode)
		zap.L().Error("catastro request failed",
			zap.String("operacion", op),
			zap.Int("status", resp.StatusCode),
		)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	return body, nil
}

func preview(body []byte) string {
	if len(body) > logPreviewLimit {
		return string(body[:logPreviewLimit])
	}
	return string(body)
}
