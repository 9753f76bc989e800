// Package probe implements the playback capabilities for a headless host.
// The native player "plays" an asset by checking that it can be fetched,
// and the web player validates and records trailer embed URLs.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/vmunix/netlee/internal/playback"
)

var (
	// ErrUnsupportedScheme is reported for URLs the prober cannot fetch.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrUnreachable is reported when an asset does not respond with content.
	ErrUnreachable = errors.New("asset unreachable")

	// ErrNotLoaded is returned by Reload before any Load.
	ErrNotLoaded = errors.New("player has no asset loaded")
)

const defaultTimeout = 10 * time.Second

// NativePlayer probes assets over HTTP(S) or the local filesystem and
// reports the outcome through the playback status stream.
type NativePlayer struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	onStatus playback.StatusFunc
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Option configures a NativePlayer.
type Option func(*NativePlayer)

// WithHTTPClient sets the client used for HTTP probes.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *NativePlayer) {
		p.httpClient = hc
	}
}

// WithTimeout bounds each probe.
func WithTimeout(d time.Duration) Option {
	return func(p *NativePlayer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *NativePlayer) {
		p.logger = logger
	}
}

// NewNativePlayer creates a probing native player.
func NewNativePlayer(opts ...Option) *NativePlayer {
	p := &NativePlayer{
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.logger = p.logger.With("component", "native-player")
	return p
}

// Load starts probing url. The outcome arrives on onStatus.
func (p *NativePlayer) Load(rawURL string, onStatus playback.StatusFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStatus = onStatus
	return p.startLocked(rawURL)
}

// Reload probes a new url with the callback given to Load.
func (p *NativePlayer) Reload(rawURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.onStatus == nil {
		return ErrNotLoaded
	}
	return p.startLocked(rawURL)
}

// Stop cancels any probe in flight and forgets the callback.
func (p *NativePlayer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.onStatus = nil
	p.mu.Unlock()
}

// Wait blocks until every started probe has returned.
func (p *NativePlayer) Wait() {
	p.wg.Wait()
}

func (p *NativePlayer) startLocked(rawURL string) error {
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.cancel = cancel
	onStatus := p.onStatus

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()

		err := p.probe(ctx, rawURL)
		if errors.Is(ctx.Err(), context.Canceled) || onStatus == nil {
			// Superseded by Reload or Stop.
			return
		}
		if err != nil {
			p.logger.Debug("probe failed", "url", rawURL, "error", err)
			onStatus(playback.Status{URL: rawURL, Err: err})
			return
		}
		p.logger.Debug("probe ok", "url", rawURL)
		onStatus(playback.Status{URL: rawURL, Loaded: true})
	}()
	return nil
}

func (p *NativePlayer) probe(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedScheme, err)
	}

	switch u.Scheme {
	case "http", "https":
		return p.probeHTTP(ctx, rawURL)
	case "file":
		return probeFile(u.Path)
	case "":
		return probeFile(rawURL)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// probeHTTP sends HEAD, falling back to a one-byte ranged GET for servers
// that refuse HEAD.
func (p *NativePlayer) probeHTTP(ctx context.Context, rawURL string) error {
	status, err := p.request(ctx, http.MethodHead, rawURL)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = p.request(ctx, http.MethodGet, rawURL)
		if err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: status %d", ErrUnreachable, status)
	}
	return nil
}

func (p *NativePlayer) request(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func probeFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrUnreachable, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrUnreachable, path)
	}
	return nil
}
