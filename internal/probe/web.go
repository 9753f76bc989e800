package probe

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/vmunix/netlee/internal/playback"
)

// ErrInvalidEmbed is returned for embed URLs a browser could not open.
var ErrInvalidEmbed = errors.New("invalid embed url")

// WebPlayer records the embed URLs it is asked to open.
type WebPlayer struct {
	mu      sync.Mutex
	opened  []string
	current string
	onError playback.ErrorFunc
}

// NewWebPlayer creates a recording web player.
func NewWebPlayer() *WebPlayer {
	return &WebPlayer{}
}

// Open validates embedURL and records it as the open page.
func (w *WebPlayer) Open(embedURL string, onError playback.ErrorFunc) error {
	u, err := url.Parse(embedURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmbed, err)
	}
	if u.Scheme != "https" || u.Host == "" || !strings.HasPrefix(u.Path, "/embed/") {
		return fmt.Errorf("%w: %s", ErrInvalidEmbed, embedURL)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.opened = append(w.opened, embedURL)
	w.current = embedURL
	w.onError = onError
	return nil
}

// Close closes the open page, if any.
func (w *WebPlayer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = ""
	w.onError = nil
}

// Current returns the open embed URL, or "".
func (w *WebPlayer) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Opened returns every embed URL opened so far, in order.
func (w *WebPlayer) Opened() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.opened...)
}

// Fail reports err from the open page, as a browser would when the
// embedded video cannot play. It reports false when no page is open.
func (w *WebPlayer) Fail(err error) bool {
	w.mu.Lock()
	onError := w.onError
	w.mu.Unlock()
	if onError == nil {
		return false
	}
	onError(err)
	return true
}
