// Package playback drives the lifecycle of one mounted title: resolution,
// details, native or trailer playback, the one-shot stream to direct URL
// fallback, and failure.
package playback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/media"
)

const defaultTrailerHost = "www.youtube.com"

// Controller is the playback state machine. All state is owned by the loop;
// public methods hop onto it and player callbacks are posted to it.
type Controller struct {
	loop        *Loop
	resolver    Resolver
	native      NativePlayer
	web         WebPlayer
	nav         Navigator
	publisher   events.Publisher
	trailerHost string
	logger      *slog.Logger

	current *mount // loop-owned
}

// mount is the state of one ContentRef between Mount and Unmount.
type mount struct {
	ref     media.ContentRef
	alive   bool // cleared on teardown; late callbacks check it
	session Session
	record  *media.MovieRecord

	candidates []string // native load order for the current attempt
	attempt    int      // index into candidates
	seq        int      // bumped on every player start and stop
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPublisher sets where phase and playback events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(c *Controller) {
		c.publisher = p
	}
}

// WithNavigator sets the collaborator that receives GoBack.
func WithNavigator(nav Navigator) Option {
	return func(c *Controller) {
		c.nav = nav
	}
}

// WithTrailerHost sets the host used to build trailer embed URLs.
func WithTrailerHost(host string) Option {
	return func(c *Controller) {
		if host != "" {
			c.trailerHost = host
		}
	}
}

// New creates a Controller. The loop must be running for any method to
// make progress.
func New(loop *Loop, resolver Resolver, native NativePlayer, web WebPlayer, opts ...Option) *Controller {
	c := &Controller{
		loop:        loop,
		resolver:    resolver,
		native:      native,
		web:         web,
		trailerHost: defaultTrailerHost,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Mount makes ref the active title and starts resolving it. Mounting the
// ref that is already mounted is a no-op; any other ref tears down the
// current mount first.
func (c *Controller) Mount(ctx context.Context, ref media.ContentRef) error {
	// Resolution outlives the caller's request; a stale result is dropped
	// by the liveness check instead of canceling the read.
	rctx := context.WithoutCancel(ctx)
	return c.loop.Do(ctx, func() { c.mountRef(rctx, ref) })
}

// Unmount tears down the active title. Pending callbacks become no-ops.
func (c *Controller) Unmount(ctx context.Context) error {
	return c.loop.Do(ctx, c.unmountCurrent)
}

// Play handles the user's play request in DetailsReady.
func (c *Controller) Play(ctx context.Context) error {
	return c.run(ctx, c.play)
}

// BackToDetails stops the active player and returns to DetailsReady
// without re-resolving.
func (c *Controller) BackToDetails(ctx context.Context) error {
	return c.run(ctx, c.backToDetails)
}

// GoBack unmounts and signals the navigator.
func (c *Controller) GoBack(ctx context.Context) error {
	return c.loop.Do(ctx, func() {
		c.unmountCurrent()
		if c.nav != nil {
			c.nav.Back()
		}
	})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot(ctx context.Context) (View, error) {
	var v View
	err := c.loop.Do(ctx, func() { v = c.view() })
	return v, err
}

func (c *Controller) run(ctx context.Context, fn func() error) error {
	var err error
	if doErr := c.loop.Do(ctx, func() { err = fn() }); doErr != nil {
		return doErr
	}
	return err
}

func (c *Controller) mountRef(ctx context.Context, ref media.ContentRef) {
	if m := c.current; m != nil && m.ref == ref {
		c.logger.Debug("already mounted", "id", ref.ID, "origin", ref.Origin)
		return
	}
	c.unmountCurrent()

	m := &mount{
		ref:     ref,
		alive:   true,
		session: Session{Ref: ref, Phase: PhaseResolving},
	}
	c.current = m
	c.logger.Info("mounted", "id", ref.ID, "origin", ref.Origin)

	go func() {
		rec, err := c.resolver.Resolve(ctx, ref)
		c.loop.Post(func() { c.resolved(m, rec, err) })
	}()
}

func (c *Controller) unmountCurrent() {
	m := c.current
	if m == nil {
		return
	}
	m.alive = false
	c.stopPlayer(m)
	c.current = nil
	c.logger.Info("unmounted", "id", m.ref.ID, "origin", m.ref.Origin, "phase", m.session.Phase)
}

// live reports whether callbacks captured for m may still mutate state.
// The identifier captured at request time must still be the mounted one.
func (c *Controller) live(m *mount) bool {
	return m.alive && c.current == m && c.current.ref == m.ref
}

func (c *Controller) resolved(m *mount, rec *media.MovieRecord, err error) {
	if !c.live(m) {
		currentID := ""
		if c.current != nil {
			currentID = c.current.ref.String()
		}
		c.logger.Debug("discarding stale resolution", "ref", m.ref.String(), "current", currentID)
		c.publish(&events.ResolveDiscarded{
			BaseEvent: c.base(events.EventResolveDiscarded, m),
			CurrentID: currentID,
		})
		return
	}

	if err != nil {
		c.logger.Warn("resolve failed", "id", m.ref.ID, "origin", m.ref.Origin, "error", err)
		c.publish(&events.ResolveFailed{
			BaseEvent: c.base(events.EventResolveFailed, m),
			Origin:    string(m.ref.Origin),
			Kind:      string(media.KindOf(err)),
			Reason:    err.Error(),
		})
		c.fail(m, err)
		return
	}

	m.record = rec
	c.publish(&events.ResolveCompleted{
		BaseEvent:  c.base(events.EventResolveCompleted, m),
		Origin:     string(m.ref.Origin),
		Title:      rec.Title,
		HasTrailer: rec.Trailer != nil,
	})

	if m.ref.Origin == media.OriginCatalog {
		c.transition(m, PhaseDetailsReady)
		return
	}

	// Local content has no details step.
	if !rec.PrimaryAsset.Playable() {
		c.fail(m, ErrNoPlayableAsset)
		return
	}
	c.transition(m, PhasePlaying)
	c.startNative(m, rec.PrimaryAsset)
}

func (c *Controller) play() error {
	m := c.current
	if m == nil {
		return ErrNotMounted
	}
	if m.session.Phase != PhaseDetailsReady {
		return fmt.Errorf("%w: play from %s", ErrInvalidTransition, m.session.Phase)
	}

	rec := m.record
	switch {
	case rec.FullAsset.Playable():
		c.transition(m, PhasePlayingFull)
		c.startNative(m, rec.FullAsset)
	case rec.Trailer != nil:
		c.transition(m, PhasePlayingTrailer)
		c.startTrailer(m, *rec.Trailer)
	default:
		c.transition(m, PhaseUnavailable)
	}
	return nil
}

func (c *Controller) backToDetails() error {
	m := c.current
	if m == nil {
		return ErrNotMounted
	}
	if m.session.Phase != PhasePlayingFull && m.session.Phase != PhasePlayingTrailer {
		return fmt.Errorf("%w: back to details from %s", ErrInvalidTransition, m.session.Phase)
	}

	c.stopPlayer(m)
	m.candidates = nil
	m.attempt = 0
	m.session.ActiveAssetURL = ""
	m.session.UsedFallback = false
	c.transition(m, PhaseDetailsReady)
	return nil
}

// startNative begins a fresh playback attempt on the native player.
// The caller guarantees asset is playable.
func (c *Controller) startNative(m *mount, asset *media.AssetRef) {
	m.candidates = asset.Candidates()
	m.attempt = 0
	m.seq++
	m.session.UsedFallback = false

	url := m.candidates[0]
	m.session.ActiveAssetURL = url
	c.logger.Info("loading asset", "id", m.ref.ID, "origin", m.ref.Origin, "url", url)

	if err := c.native.Load(url, c.statusFunc(m, m.seq)); err != nil {
		c.nativeFailed(m, url, err)
	}
}

func (c *Controller) statusFunc(m *mount, seq int) StatusFunc {
	return func(st Status) {
		c.loop.Post(func() { c.onStatus(m, seq, st) })
	}
}

func (c *Controller) onStatus(m *mount, seq int, st Status) {
	if !c.live(m) || m.seq != seq || !m.session.Phase.UsesNativePlayer() {
		return
	}
	if st.URL != m.session.ActiveAssetURL {
		c.logger.Debug("ignoring status for inactive url", "url", st.URL, "active", m.session.ActiveAssetURL)
		return
	}

	switch {
	case st.Err != nil:
		c.nativeFailed(m, st.URL, st.Err)
	case st.Loaded:
		c.logger.Info("asset loaded", "id", m.ref.ID, "url", st.URL, "used_fallback", m.session.UsedFallback)
		c.publish(&events.PlaybackLoaded{
			BaseEvent:    c.base(events.EventPlaybackLoaded, m),
			URL:          st.URL,
			UsedFallback: m.session.UsedFallback,
		})
	}
}

// nativeFailed applies the fallback policy: a failure on the stream URL
// reloads the distinct direct URL once; anything else fails the session.
func (c *Controller) nativeFailed(m *mount, url string, cause error) {
	next := m.attempt + 1
	if !m.session.UsedFallback && m.attempt == 0 && next < len(m.candidates) {
		to := m.candidates[next]
		m.attempt = next
		m.session.UsedFallback = true
		m.session.ActiveAssetURL = to

		c.logger.Warn("stream failed, falling back to direct url", "id", m.ref.ID, "from", url, "to", to, "error", cause)
		c.publish(&events.FallbackTriggered{
			BaseEvent: c.base(events.EventFallbackTriggered, m),
			FromURL:   url,
			ToURL:     to,
			Reason:    cause.Error(),
		})

		if err := c.native.Reload(to); err != nil {
			c.nativeFailed(m, to, err)
		}
		return
	}

	c.stopPlayer(m)
	c.fail(m, fmt.Errorf("%w: %s: %w", media.ErrPlayback, url, cause))
}

func (c *Controller) startTrailer(m *mount, trailer media.TrailerRef) {
	m.seq++
	m.candidates = nil
	m.attempt = 0
	m.session.UsedFallback = false

	url := trailer.EmbedURL(c.trailerHost)
	m.session.ActiveAssetURL = url
	c.logger.Info("opening trailer", "id", m.ref.ID, "key", trailer.Key)

	seq := m.seq
	onError := func(err error) {
		c.loop.Post(func() { c.onTrailerError(m, seq, err) })
	}
	if err := c.web.Open(url, onError); err != nil {
		c.trailerFailed(m, err)
	}
}

func (c *Controller) onTrailerError(m *mount, seq int, err error) {
	if !c.live(m) || m.seq != seq || m.session.Phase != PhasePlayingTrailer {
		return
	}
	c.trailerFailed(m, err)
}

// trailerFailed has no fallback.
func (c *Controller) trailerFailed(m *mount, cause error) {
	url := m.session.ActiveAssetURL
	c.stopPlayer(m)
	c.fail(m, fmt.Errorf("%w: trailer %s: %w", media.ErrPlayback, url, cause))
}

// stopPlayer tears down whichever player the phase uses and invalidates
// its outstanding callbacks.
func (c *Controller) stopPlayer(m *mount) {
	switch {
	case m.session.Phase.UsesNativePlayer():
		c.native.Stop()
	case m.session.Phase == PhasePlayingTrailer:
		c.web.Close()
	default:
		return
	}
	m.seq++
}

func (c *Controller) fail(m *mount, err error) {
	m.session.Err = err
	m.session.LastError = media.KindOf(err)
	playing := m.session.Phase.IsPlaying()
	if !c.transition(m, PhaseFailed) {
		return
	}
	if playing || m.session.LastError == media.KindPlayback {
		c.publish(&events.PlaybackFailed{
			BaseEvent: c.base(events.EventPlaybackFailed, m),
			Kind:      string(m.session.LastError),
			URL:       m.session.ActiveAssetURL,
			Reason:    err.Error(),
		})
	}
}

func (c *Controller) transition(m *mount, to Phase) bool {
	from := m.session.Phase
	if !from.CanTransitionTo(to) {
		c.logger.Error("invalid phase transition", "id", m.ref.ID, "from", from, "to", to)
		return false
	}
	m.session.Phase = to
	c.logger.Debug("phase changed", "id", m.ref.ID, "origin", m.ref.Origin, "from", from, "to", to)
	c.publish(&events.PhaseChanged{
		BaseEvent: c.base(events.EventPhaseChanged, m),
		From:      string(from),
		To:        string(to),
	})
	return true
}

func (c *Controller) view() View {
	m := c.current
	if m == nil {
		return View{}
	}
	v := View{
		Mounted:   true,
		Session:   m.session,
		Record:    m.record,
		CanGoBack: true,
	}
	if m.session.Phase == PhaseDetailsReady && m.record != nil {
		v.CanPlayFull = m.record.FullAsset.Playable()
		v.CanPlayTrailer = !v.CanPlayFull && m.record.Trailer != nil
	}
	return v
}

func (c *Controller) base(eventType string, m *mount) events.BaseEvent {
	return events.NewBaseEvent(eventType, events.EntityMovie, m.ref.String())
}

func (c *Controller) publish(e events.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(context.Background(), e); err != nil {
		c.logger.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}
