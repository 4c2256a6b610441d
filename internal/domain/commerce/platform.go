package commerce

import (
	"context"
	"errors"
	"strconv"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformRequestFailed   = errors.New("commerce: platform request failed")
	ErrPlatformInvalidResponse = errors.New("commerce: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("commerce: platform authentication failed")
	ErrPlatformRateLimited     = errors.New("commerce: platform rate limited")
	ErrOrderNotFound           = errors.New("commerce: order not found on platform")
)

// ---------------------------------------------------------------------------
// CommercePlatform Port Interface
// ---------------------------------------------------------------------------

// ListOptions narrows a tagged-order listing
type ListOptions struct {
	// Tag selects orders carrying this tag (required)
	Tag string
	// Since restricts to orders created at or after this ISO-8601 timestamp.
	// Empty means no lower bound.
	Since string
}

// CommercePlatform defines the port interface for the remote commerce API.
// This interface follows the Ports & Adapters pattern - it's defined in the
// domain layer, and the concrete HTTP adapter lives in the infrastructure layer.
type CommercePlatform interface {
	// ListOrdersByTag retrieves every order currently bearing the given tag,
	// following the platform's link-based pagination to completion. A non-success
	// response from any page aborts the whole listing; no partial result is
	// returned.
	ListOrdersByTag(ctx context.Context, opts ListOptions) ([]SourceOrder, error)

	// GetOrder retrieves a single order by its platform identifier. Used to
	// re-read current tags before retagging so unrelated tags are not clobbered.
	GetOrder(ctx context.Context, orderID string) (*SourceOrder, error)

	// UpdateTags replaces the order's tag set on the platform
	UpdateTags(ctx context.Context, orderID string, tags []string) error
}

// formatID renders a platform numeric identifier as a string
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
