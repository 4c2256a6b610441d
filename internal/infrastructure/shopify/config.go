package shopify

import (
	"errors"
	"fmt"
)

// Config holds configuration for the Shopify admin API client
type Config struct {
	// Domain is the shop domain (e.g. "example.myshopify.com")
	Domain string
	// APIVersion is the admin API version (e.g. "2024-01")
	APIVersion string
	// AccessToken is the admin API access token
	AccessToken string
	// BaseURL overrides the derived https://{Domain} base; used by tests
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for Shopify configuration
var (
	ErrConfigMissingDomain      = errors.New("shopify: shop domain is required")
	ErrConfigMissingAPIVersion  = errors.New("shopify: API version is required")
	ErrConfigMissingAccessToken = errors.New("shopify: access token is required")
)

// NewConfig creates a new Shopify configuration with defaults
func NewConfig(domain, apiVersion, accessToken string) *Config {
	return &Config{
		Domain:         domain,
		APIVersion:     apiVersion,
		AccessToken:    accessToken,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills derived defaults
func (c *Config) Validate() error {
	if c.Domain == "" && c.BaseURL == "" {
		return ErrConfigMissingDomain
	}
	if c.APIVersion == "" {
		return ErrConfigMissingAPIVersion
	}
	if c.AccessToken == "" {
		return ErrConfigMissingAccessToken
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("https://%s", c.Domain)
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
