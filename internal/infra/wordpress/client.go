// Package wordpress implements the contractor source backed by the
// WordPress REST API.
package wordpress

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"contractor-directory/internal/domain"
)

const (
	contractorsEndpoint  = "/contractor"
	serviceTypesEndpoint = "/contractor_service_type"

	headerTotalPages = "X-WP-TotalPages"
	headerTotal      = "X-WP-Total"
)

// ClientConfig holds configuration for the WordPress client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// APIError is returned when the WordPress API responds with a non-2xx
// status. The response body is kept for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("wordpress api returned status %d: %s", e.StatusCode, e.Body)
}

// Client implements domain.ContractorSource against the WordPress REST API.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new WordPress client with retry and circuit breaker
// protection.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "wordpress",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger: logger,
	}
}

// FetchPage retrieves one page of contractors matching the query.
// Pagination metadata comes from the X-WP-TotalPages and X-WP-Total
// response headers, defaulting to 1 and 0 when absent or malformed.
func (c *Client) FetchPage(ctx context.Context, query domain.SourceQuery) (*domain.SourcePage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = domain.DefaultPageSize
	}

	var records []Record
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		req := c.client.R().
			SetContext(ctx).
			SetResult(&records).
			SetQueryParam("per_page", strconv.Itoa(query.PerPage)).
			SetQueryParam("page", strconv.Itoa(query.Page)).
			SetQueryParam("_embed", "true")

		if query.Search != "" {
			req.SetQueryParam("search", query.Search)
		}
		if query.ServiceType != "" {
			req.SetQueryParam("contractor_service_type", query.ServiceType)
		}
		if query.Location != "" {
			req.SetQueryParam("meta_key", "contractor_location")
			req.SetQueryParam("meta_value", query.Location)
		}

		r, err := req.Get(contractorsEndpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, &APIError{StatusCode: r.StatusCode(), Body: string(r.Body())}
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("wordpress fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching contractors: %w", err)
	}

	contractors := make([]*domain.Contractor, 0, len(records))
	for i := range records {
		contractors = append(contractors, records[i].ToDomain())
	}

	page := &domain.SourcePage{
		Contractors: contractors,
		TotalPages:  headerInt(resp, headerTotalPages, 1),
		Total:       headerInt(resp, headerTotal, 0),
		Page:        query.Page,
	}

	c.logger.Debug("wordpress fetch completed",
		zap.Int("count", len(contractors)),
		zap.Int("page", page.Page),
		zap.Int("total_pages", page.TotalPages),
	)

	return page, nil
}

// FetchByID retrieves a single contractor by its source id.
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.Contractor, error) {
	var record Record
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&record).
			SetQueryParam("_embed", "true").
			Get(contractorsEndpoint + "/" + id)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, &APIError{StatusCode: r.StatusCode(), Body: string(r.Body())}
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("wordpress fetch by id failed",
			zap.String("id", id),
			zap.Error(err),
		)

		return nil, fmt.Errorf("fetching contractor %s: %w", id, err)
	}

	return record.ToDomain(), nil
}

// FetchServiceTypes retrieves the service taxonomy terms used by the
// filter dropdown.
func (c *Client) FetchServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var terms []Term
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&terms).
			Get(serviceTypesEndpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, &APIError{StatusCode: r.StatusCode(), Body: string(r.Body())}
		}

		return r, nil
	})

	if err != nil {
		return nil, fmt.Errorf("fetching service types: %w", err)
	}

	types := make([]domain.ServiceType, 0, len(terms))
	for i := range terms {
		types = append(types, terms[i].ToDomain())
	}

	return types, nil
}

// HealthCheck verifies the WordPress API is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", "1").
		Get(contractorsEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}

// headerInt parses an integer response header, falling back to def when
// the header is absent or malformed.
func headerInt(resp *resty.Response, key string, def int) int {
	v, err := strconv.Atoi(resp.Header().Get(key))
	if err != nil {
		return def
	}

	return v
}
