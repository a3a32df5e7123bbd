// Package dom abstracts the rendered-DOM provider so extraction logic never
// depends on a concrete browser-automation type.
package dom

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by FindOne when no element matches the selector.
	ErrNotFound = errors.New("dom: element not found")
	// ErrTimeout is returned by the Wait* methods when the bounded wait expires.
	ErrTimeout = errors.New("dom: wait timed out")
)

// Element is a read-only view of a rendered DOM node.
type Element interface {
	// Text returns the concatenated text content of the node.
	Text() string
	// Attr returns the value of the named attribute and whether it exists.
	Attr(name string) (string, bool)
	// FindOne returns the first descendant matching the selector, or ErrNotFound.
	FindOne(selector string) (Element, error)
	// FindAll returns all descendants matching the selector, in document order.
	FindAll(selector string) []Element
}

// Page is a rendered-DOM provider: it loads a URL, waits for client-side
// rendering, and serves element queries against the resulting document.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitForVisible waits up to timeout for the selector to become visible
	// and returns the matching element, or ErrTimeout.
	WaitForVisible(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// WaitForAllVisible waits up to timeout for the selector to become
	// visible and returns every matching element, or ErrTimeout.
	WaitForAllVisible(ctx context.Context, selector string, timeout time.Duration) ([]Element, error)
	Close() error
}
