// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import "github.com/gogpu/gputypes"

// SurfaceState is the shared, read-mostly state a surface exposes to its
// default framebuffer and to the backend factory.
type SurfaceState struct {
	// Config is the immutable config used to create the surface.
	// Never nil after construction.
	Config *Config

	// DefaultFramebuffer is exclusively owned by the surface. It is
	// created by Initialize and nil again after release.
	DefaultFramebuffer *DefaultFramebuffer
}

// Surface is an owned drawable resource bound to a native window,
// off-screen buffer, or pixmap.
//
// A Surface is constructed by one of the variant constructors
// (NewWindowSurface, NewPbufferSurface, NewPbufferSurfaceFromClientBuffer,
// NewPixmapSurface), initialized once, made current and not current by
// rendering contexts, and finally destroyed via RequestDestroy.
//
// Destruction is deferred while any context still has the surface current:
// the backend and default framebuffer stay valid until the last
// SetCurrent(false) drains the current count to zero. The current count is
// a caller-disciplined reference count, not a lock; the surface performs
// no internal synchronization and relies on the platform's context-locking
// discipline to serialize currency changes.
type Surface struct {
	state SurfaceState
	impl  SurfaceImpl
	kind  SurfaceKind

	currentCount int
	destroyed    bool
	released     bool
	initialized  bool

	postSubBufferRequested bool
	flexibleCompatibility  bool
	directComposition      bool

	fixedSize   bool
	fixedWidth  int
	fixedHeight int

	textureFormat TexFormat
	textureTarget TexTarget

	pixelAspectRatio float64
	renderBuffer     RenderBuffer
	swapBehavior     SwapBehavior
	orientation      Orientation

	texture BoundTexture

	backFormat gputypes.TextureFormat
	dsFormat   gputypes.TextureFormat
}

// newSurface builds the kind-independent part of a surface from the config
// and resolved attributes. The caller attaches the impl.
func newSurface(kind SurfaceKind, config *Config, attrs Attributes) *Surface {
	if config == nil {
		panic("drawable: surface created with nil config")
	}

	s := &Surface{
		state:                  SurfaceState{Config: config},
		kind:                   kind,
		postSubBufferRequested: attrs.PostSubBuffer,
		flexibleCompatibility:  attrs.FlexibleCompatibility,
		directComposition:      attrs.DirectComposition,
		fixedSize:              attrs.FixedSize,
		pixelAspectRatio:       1.0,
		renderBuffer:           BackBuffer,
		orientation:            attrs.Orientation,
		backFormat:             config.RenderTargetFormat,
		dsFormat:               config.DepthStencilFormat,
	}

	if s.fixedSize {
		s.fixedWidth = attrs.Width
		s.fixedHeight = attrs.Height
	}

	// Texture interop is declared for off-screen kinds only.
	if kind != KindWindow {
		s.textureFormat = attrs.TextureFormat
		s.textureTarget = attrs.TextureTarget
	}

	return s
}

// NewWindowSurface creates a surface bound to a native window.
func NewWindowSurface(factory ImplFactory, config *Config, window NativeWindow, opts ...SurfaceOption) (*Surface, error) {
	attrs := resolveOptions(opts)
	s := newSurface(KindWindow, config, attrs)

	impl, err := checkFactory(factory).CreateWindowSurface(&s.state, window, attrs)
	if err != nil {
		return nil, err
	}
	s.impl = impl
	return s, nil
}

// NewPbufferSurface creates an off-screen pbuffer surface.
func NewPbufferSurface(factory ImplFactory, config *Config, opts ...SurfaceOption) (*Surface, error) {
	attrs := resolveOptions(opts)
	s := newSurface(KindPbuffer, config, attrs)

	impl, err := checkFactory(factory).CreatePbufferSurface(&s.state, attrs)
	if err != nil {
		return nil, err
	}
	s.impl = impl
	return s, nil
}

// NewPbufferSurfaceFromClientBuffer wraps an externally allocated buffer
// as a pbuffer surface.
func NewPbufferSurfaceFromClientBuffer(factory ImplFactory, config *Config, kind ClientBufferKind, buffer ClientBuffer, opts ...SurfaceOption) (*Surface, error) {
	attrs := resolveOptions(opts)
	s := newSurface(KindPbuffer, config, attrs)

	impl, err := checkFactory(factory).CreatePbufferFromClientBuffer(&s.state, kind, buffer, attrs)
	if err != nil {
		return nil, err
	}
	s.impl = impl
	return s, nil
}

// NewPixmapSurface creates a surface bound to a native pixmap.
func NewPixmapSurface(factory ImplFactory, config *Config, pixmap NativePixmap, opts ...SurfaceOption) (*Surface, error) {
	attrs := resolveOptions(opts)
	s := newSurface(KindPixmap, config, attrs)

	impl, err := checkFactory(factory).CreatePixmapSurface(&s.state, pixmap, attrs)
	if err != nil {
		return nil, err
	}
	s.impl = impl
	return s, nil
}

func checkFactory(factory ImplFactory) ImplFactory {
	if factory == nil {
		panic("drawable: surface created with nil factory")
	}
	return factory
}

// Initialize realizes the surface's native resource. It must be called
// exactly once, before any other operation. On success the surface has
// read the backend's swap behavior and owns a default framebuffer.
func (s *Surface) Initialize(display *Display) error {
	if s.initialized {
		panic("drawable: surface initialized twice")
	}
	if s.released {
		panic("drawable: surface used after release")
	}

	if err := s.impl.Initialize(display); err != nil {
		return err
	}

	// Read here rather than on demand: some backends only know their swap
	// behavior after initialization.
	s.swapBehavior = s.impl.SwapBehavior()

	s.state.DefaultFramebuffer = newDefaultFramebuffer(s)
	s.initialized = true

	Logger().Debug("surface initialized",
		"kind", s.kind.String(),
		"width", s.Width(),
		"height", s.Height(),
		"swapBehavior", s.swapBehavior.String())

	return nil
}

// SetCurrent records that a rendering context has bound (true) or unbound
// (false) this surface as its current target.
//
// Every SetCurrent(true) must be paired with exactly one later
// SetCurrent(false); unbinding a surface that is not current panics. When
// the last holder unbinds a surface whose destruction was requested, the
// backend and framebuffer are released before SetCurrent returns.
func (s *Surface) SetCurrent(isCurrent bool) {
	if isCurrent {
		if s.released {
			panic("drawable: surface used after release")
		}
		s.currentCount++
		return
	}

	if s.currentCount == 0 {
		panic("drawable: unbalanced SetCurrent(false)")
	}
	s.currentCount--
	if s.currentCount == 0 && s.destroyed {
		s.release()
	}
}

// RequestDestroy marks the surface destroyed. If no context currently has
// the surface bound, the backend and framebuffer are released before the
// call returns; otherwise release is deferred to the SetCurrent(false)
// call that drains the current count to zero. Idempotent.
func (s *Surface) RequestDestroy() {
	s.destroyed = true
	if s.currentCount == 0 {
		s.release()
	}
}

// release frees the backend and framebuffer. It is the single choke point
// for destruction, reached only when destroyed && currentCount == 0, and
// runs at most once per surface.
func (s *Surface) release() {
	if s.released {
		return
	}
	s.released = true

	// A texture still bound at release time must not be left pointing at
	// a freed surface. Backend first, then both halves of the relation.
	if s.texture != nil {
		if s.impl != nil {
			if err := s.impl.ReleaseTexImage(s.renderBuffer); err != nil {
				Logger().Warn("release of bound tex image failed", "kind", s.kind.String(), "err", err)
			}
		}
		s.texture.ReleaseTexImageFromSurface()
		s.texture = nil
	}

	// The framebuffer detaches before the backend goes away so it never
	// outlives the buffer it attaches to.
	if s.state.DefaultFramebuffer != nil {
		s.state.DefaultFramebuffer.detach()
		s.state.DefaultFramebuffer = nil
	}

	if s.impl != nil {
		s.impl.Destroy()
		s.impl = nil
	}

	Logger().Debug("surface released", "kind", s.kind.String())
}

// checkUsable guards operations that require a live backend.
func (s *Surface) checkUsable() {
	if !s.initialized {
		panic("drawable: surface used before Initialize")
	}
	if s.released {
		panic("drawable: surface used after release")
	}
}

// Swap presents the back buffer.
func (s *Surface) Swap() error {
	s.checkUsable()
	return s.impl.Swap()
}

// SwapWithDamage presents the back buffer, hinting that only the given
// rectangles changed.
func (s *Surface) SwapWithDamage(rects []Rect) error {
	s.checkUsable()
	return s.impl.SwapWithDamage(rects)
}

// PostSubBuffer presents a sub-rectangle of the back buffer.
func (s *Surface) PostSubBuffer(x, y, width, height int) error {
	s.checkUsable()
	return s.impl.PostSubBuffer(x, y, width, height)
}

// IsPostSubBufferSupported reports whether PostSubBuffer may be used:
// the surface must have requested it and the backend must support it.
func (s *Surface) IsPostSubBufferSupported() bool {
	s.checkUsable()
	return s.postSubBufferRequested && s.impl.IsPostSubBufferSupported()
}

// SetSwapInterval sets the minimum number of vertical refreshes between
// swaps.
func (s *Surface) SetSwapInterval(interval int) {
	s.checkUsable()
	s.impl.SetSwapInterval(interval)
}

// QuerySurfaceHandle returns a backend-specific native handle for the
// given attribute.
func (s *Surface) QuerySurfaceHandle(attribute int) (uintptr, error) {
	s.checkUsable()
	return s.impl.QuerySurfaceHandle(attribute)
}

// SyncValues returns the surface's presentation counters.
func (s *Surface) SyncValues() (SyncValues, error) {
	s.checkUsable()
	return s.impl.SyncValues()
}

// BindTexImage exposes the surface's back buffer as the sampled content of
// texture. At most one texture may be bound at a time; binding a second
// texture panics. Neither side owns the other: the binding is cleared from
// both sides by ReleaseTexImage, or by ReleaseTexImageFromTexture when the
// texture tears down first.
func (s *Surface) BindTexImage(texture BoundTexture) error {
	s.checkUsable()
	if texture == nil {
		panic("drawable: BindTexImage with nil texture")
	}
	if s.texture != nil {
		panic("drawable: surface already has a bound texture")
	}

	if err := s.impl.BindTexImage(s.renderBuffer); err != nil {
		return err
	}

	texture.BindTexImageFromSurface(s)
	s.texture = texture

	Logger().Debug("tex image bound", "kind", s.kind.String())
	return nil
}

// ReleaseTexImage ends texture consumption of the back buffer and clears
// the binding from both sides. Releasing a surface with no bound texture
// panics.
func (s *Surface) ReleaseTexImage() error {
	s.checkUsable()
	if s.texture == nil {
		panic("drawable: surface has no bound texture")
	}

	if err := s.impl.ReleaseTexImage(s.renderBuffer); err != nil {
		return err
	}

	s.texture.ReleaseTexImageFromSurface()
	s.texture = nil

	Logger().Debug("tex image released", "kind", s.kind.String())
	return nil
}

// ReleaseTexImageFromTexture clears the surface's half of a texture
// binding. It is the entry point for the texture side when the texture is
// destroyed first: the texture's own teardown already released the backend
// binding, so the surface must not touch the backend here.
func (s *Surface) ReleaseTexImageFromTexture() {
	if s.texture == nil {
		panic("drawable: surface has no bound texture")
	}
	s.texture = nil
}

// BoundTexture returns the currently bound texture, or nil.
func (s *Surface) BoundTexture() BoundTexture {
	return s.texture
}

// Width returns the surface width in pixels. Fixed-size surfaces report
// the caller-specified width regardless of backend rounding.
func (s *Surface) Width() int {
	if s.fixedSize {
		return s.fixedWidth
	}
	s.checkUsable()
	return s.impl.Width()
}

// Height returns the surface height in pixels. Fixed-size surfaces report
// the caller-specified height regardless of backend rounding.
func (s *Surface) Height() int {
	if s.fixedSize {
		return s.fixedHeight
	}
	s.checkUsable()
	return s.impl.Height()
}

// Kind returns what native resource backs this surface.
func (s *Surface) Kind() SurfaceKind {
	return s.kind
}

// Config returns the config the surface was created with.
func (s *Surface) Config() *Config {
	return s.state.Config
}

// DefaultFramebuffer returns the surface's framebuffer wrapper, or nil
// before Initialize and after release.
func (s *Surface) DefaultFramebuffer() *DefaultFramebuffer {
	return s.state.DefaultFramebuffer
}

// Impl returns the backend implementation, or nil after release. Callers
// that need backend-specific access (for example the software backend's
// BackBuffer) type-assert the result.
func (s *Surface) Impl() SurfaceImpl {
	return s.impl
}

// SwapBehavior reports what happens to back buffer contents on swap.
// Only meaningful after Initialize.
func (s *Surface) SwapBehavior() SwapBehavior {
	return s.swapBehavior
}

// TextureFormat returns the declared texture interop format.
func (s *Surface) TextureFormat() TexFormat {
	return s.textureFormat
}

// TextureTarget returns the declared texture interop target.
func (s *Surface) TextureTarget() TexTarget {
	return s.textureTarget
}

// IsFixedSize reports whether size queries bypass the backend.
func (s *Surface) IsFixedSize() bool {
	return s.fixedSize
}

// RenderBuffer returns which buffer rendering targets.
func (s *Surface) RenderBuffer() RenderBuffer {
	return s.renderBuffer
}

// PixelAspectRatio returns the pixel aspect ratio of the surface.
func (s *Surface) PixelAspectRatio() float64 {
	return s.pixelAspectRatio
}

// Orientation returns the surface's rotation hint.
func (s *Surface) Orientation() Orientation {
	return s.orientation
}

// FlexibleCompatibility reports whether flexible-compatibility mode was
// requested.
func (s *Surface) FlexibleCompatibility() bool {
	return s.flexibleCompatibility
}

// DirectComposition reports whether direct-composition mode was requested.
func (s *Surface) DirectComposition() bool {
	return s.directComposition
}

// AttachmentSize returns the attachment extent.
func (s *Surface) AttachmentSize() gputypes.Extent3D {
	//nolint:gosec // G115: surface dimensions are non-negative
	return gputypes.Extent3D{
		Width:              uint32(s.Width()),
		Height:             uint32(s.Height()),
		DepthOrArrayLayers: 1,
	}
}

// AttachmentFormat returns the back buffer format for the color binding
// and the depth/stencil format otherwise.
func (s *Surface) AttachmentFormat(binding AttachmentBinding) gputypes.TextureFormat {
	if binding == AttachmentBack {
		return s.backFormat
	}
	return s.dsFormat
}

// AttachmentSamples returns the config's multisample count, at least 1.
func (s *Surface) AttachmentSamples() int {
	if s.state.Config.Samples < 1 {
		return 1
	}
	return s.state.Config.Samples
}

// Ensure Surface satisfies the attachment capability.
var _ FramebufferAttachment = (*Surface)(nil)
