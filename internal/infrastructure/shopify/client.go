package shopify

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
	"time"

	"github.com/gematelier/ordersync/internal/domain/commerce"
)

// maxResponseSize is the maximum allowed response size from the admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// accessTokenHeader carries the admin API credential on every call
const accessTokenHeader = "X-Shopify-Access-Token"

// Client implements commerce.CommercePlatform against the Shopify admin API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new Shopify admin API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// apiURL builds an admin API endpoint URL for the given resource path
func (c *Client) apiURL(resource string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.config.BaseURL, c.config.APIVersion, resource)
}

// ListOrdersByTag retrieves every order bearing the given tag, following the
// Link-header pagination until no rel="next" URL remains. Any non-success
// page response aborts the whole listing with no partial result.
func (c *Client) ListOrdersByTag(ctx context.Context, opts commerce.ListOptions) ([]commerce.SourceOrder, error) {
	query := url.Values{}
	query.Set("status", "any")
	query.Set("limit", strconv.Itoa(listPageSize))
	query.Set("tag", opts.Tag)
	query.Set("fields", orderFields)
	if opts.Since != "" {
		query.Set("created_at_min", opts.Since)
	}

	pageURL := c.apiURL("orders.json") + "?" + query.Encode()

	var all []commerce.SourceOrder
	for pageURL != "" {
		body, next, err := c.getPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		var envelope ordersEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: failed to parse order list: %v", commerce.ErrPlatformInvalidResponse, err)
		}

		all = append(all, envelope.Orders...)
		pageURL = next
	}

	return all, nil
}

// GetOrder retrieves a single order by its platform identifier
func (c *Client) GetOrder(ctx context.Context, orderID string) (*commerce.SourceOrder, error) {
	endpoint := c.apiURL(fmt.Sprintf("orders/%s.json", orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to build request: %w", err)
	}

	body, resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", commerce.ErrOrderNotFound, orderID)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order: %v", commerce.ErrPlatformInvalidResponse, err)
	}
	if envelope.Order == nil {
		return nil, commerce.ErrPlatformInvalidResponse
	}

	return envelope.Order, nil
}

// UpdateTags replaces the order's tag set on the platform
func (c *Client) UpdateTags(ctx context.Context, orderID string, tags []string) error {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return fmt.Errorf("shopify: invalid order id %q: %w", orderID, err)
	}

	payload, err := json.Marshal(tagUpdateRequest{
		Order: tagUpdateOrder{
			ID:   id,
			Tags: commerce.JoinTags(tags),
		},
	})
	if err != nil {
		return fmt.Errorf("shopify: failed to encode tag update: %w", err)
	}

	endpoint := c.apiURL(fmt.Sprintf("orders/%s.json", orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("shopify: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, resp, err := c.do(req)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// getPage fetches one page of an order listing and returns its body together
// with the rel="next" continuation URL, if any
func (c *Client) getPage(ctx context.Context, pageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to build request: %w", err)
	}

	body, resp, err := c.do(req)
	if err != nil {
		return nil, "", err
	}
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	return body, parseNextLink(resp.Header.Get("Link")), nil
}

// do executes the request with credentials attached and drains the body
func (c *Client) do(req *http.Request) ([]byte, *http.Response, error) {
	req.Header.Set(accessTokenHeader, c.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", commerce.ErrPlatformRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read response: %v", commerce.ErrPlatformInvalidResponse, err)
	}

	return body, resp, nil
}

// checkStatus maps non-success HTTP statuses to platform errors
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", commerce.ErrPlatformAuthFailed, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return commerce.ErrPlatformRateLimited
	default:
		return fmt.Errorf("%w: status %d", commerce.ErrPlatformRequestFailed, resp.StatusCode)
	}
}

// parseNextLink extracts the rel="next" URL from a Link response header.
// The header has the form:
//
//	<https://shop/admin/api/...&page_info=abc>; rel="previous", <https://...&page_info=def>; rel="next"
//
// Returns empty when no next link is present.
func parseNextLink(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		urlPart := strings.TrimSpace(section[0])
		if !strings.HasPrefix(urlPart, "<") || !strings.HasSuffix(urlPart, ">") {
			continue
		}
		for _, attr := range section[1:] {
			if strings.TrimSpace(attr) == `rel="next"` {
				return strings.Trim(urlPart, "<>")
			}
		}
	}
	return ""
}

// Ensure Client implements CommercePlatform
var _ commerce.CommercePlatform = (*Client)(nil)
