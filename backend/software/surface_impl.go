// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/drawable"
)

// SurfaceImpl is the software implementation of a drawable surface.
//
// Window surfaces own a back buffer and present into the front buffer of
// their windowEntry; pbuffer surfaces own a single preserved buffer (or
// wrap a client-provided one); pixmap surfaces draw directly into the
// registered pixmap.
type SurfaceImpl struct {
	kind  drawable.SurfaceKind
	state *drawable.SurfaceState
	attrs drawable.Attributes

	winHandle drawable.NativeWindow
	pixHandle drawable.NativePixmap
	window    *windowEntry
	client    *image.RGBA

	back *image.RGBA

	texBound     bool
	swapInterval int
	initTime     time.Time
	swapCount    uint64
	initialized  bool
	destroyed    bool
}

// Initialize realizes the backing buffers. Window and pixmap handles are
// resolved here; an unknown handle is a backend error, not a panic.
func (s *SurfaceImpl) Initialize(display *drawable.Display) error {
	switch s.kind {
	case drawable.KindWindow:
		w, ok := lookupWindow(s.winHandle)
		if !ok {
			return fmt.Errorf("%w: %#x", ErrUnknownWindow, uintptr(s.winHandle))
		}
		s.window = w
		s.back = image.NewRGBA(image.Rect(0, 0, w.width, w.height))

	case drawable.KindPbuffer:
		if s.client != nil {
			s.back = s.client
			break
		}
		w, h := s.attrs.Width, s.attrs.Height
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		s.back = image.NewRGBA(image.Rect(0, 0, w, h))

	case drawable.KindPixmap:
		img, ok := lookupPixmap(s.pixHandle)
		if !ok {
			return fmt.Errorf("%w: %#x", ErrUnknownPixmap, uintptr(s.pixHandle))
		}
		s.back = img
	}

	s.initTime = time.Now()
	s.initialized = true
	return nil
}

// SwapBehavior reports Destroyed for window surfaces, whose swap exchanges
// buffers, and Preserved for off-screen surfaces.
func (s *SurfaceImpl) SwapBehavior() drawable.SwapBehavior {
	if s.kind == drawable.KindWindow {
		return drawable.SwapBehaviorDestroyed
	}
	return drawable.SwapBehaviorPreserved
}

// Swap presents the back buffer. For window surfaces the back and front
// buffers are exchanged, leaving stale pixels in the new back buffer. For
// off-screen surfaces swap only advances the presentation counters.
func (s *SurfaceImpl) Swap() error {
	if s.kind == drawable.KindWindow {
		s.window.mu.Lock()
		if s.window.front == nil {
			s.window.front = image.NewRGBA(s.back.Bounds())
		}
		s.back, s.window.front = s.window.front, s.back
		s.window.mu.Unlock()
	}
	s.swapCount++
	return nil
}

// SwapWithDamage presents only the damaged rectangles, copying them into
// the front buffer and preserving the back buffer. An empty rect list
// falls back to a full swap.
func (s *SurfaceImpl) SwapWithDamage(rects []drawable.Rect) error {
	if s.kind != drawable.KindWindow || len(rects) == 0 {
		return s.Swap()
	}

	s.window.mu.Lock()
	if s.window.front == nil {
		s.window.front = image.NewRGBA(s.back.Bounds())
	}
	for _, r := range rects {
		sr := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(s.back.Bounds())
		if sr.Empty() {
			continue
		}
		xdraw.Copy(s.window.front, sr.Min, s.back, sr, xdraw.Src, nil)
	}
	s.window.mu.Unlock()

	s.swapCount++
	return nil
}

// PostSubBuffer presents a sub-rectangle of the back buffer without
// exchanging buffers. Only window surfaces support it.
func (s *SurfaceImpl) PostSubBuffer(x, y, width, height int) error {
	if s.kind != drawable.KindWindow {
		return ErrPostSubBufferUnsupported
	}

	s.window.mu.Lock()
	if s.window.front == nil {
		s.window.front = image.NewRGBA(s.back.Bounds())
	}
	sr := image.Rect(x, y, x+width, y+height).Intersect(s.back.Bounds())
	if !sr.Empty() {
		xdraw.Copy(s.window.front, sr.Min, s.back, sr, xdraw.Src, nil)
	}
	s.window.mu.Unlock()

	s.swapCount++
	return nil
}

// IsPostSubBufferSupported reports true for window surfaces.
func (s *SurfaceImpl) IsPostSubBufferSupported() bool {
	return s.kind == drawable.KindWindow
}

// BindTexImage makes the back buffer available as texture content.
// The surface must have been created with a texture format.
func (s *SurfaceImpl) BindTexImage(buffer drawable.RenderBuffer) error {
	if s.attrs.TextureFormat == drawable.TexFormatNone {
		return ErrNoTextureFormat
	}
	s.texBound = true
	return nil
}

// ReleaseTexImage ends texture consumption of the back buffer.
func (s *SurfaceImpl) ReleaseTexImage(buffer drawable.RenderBuffer) error {
	if !s.texBound {
		return ErrNotBound
	}
	s.texBound = false
	return nil
}

// TexImage returns the pixels a bound texture samples: a copy of the back
// buffer, scaled to the fixed size when the surface's reported size
// differs from the allocation. Returns nil when no bind is active.
func (s *SurfaceImpl) TexImage() *image.RGBA {
	if !s.texBound {
		return nil
	}

	w, h := s.back.Bounds().Dx(), s.back.Bounds().Dy()
	if s.attrs.FixedSize && (s.attrs.Width != w || s.attrs.Height != h) {
		out := image.NewRGBA(image.Rect(0, 0, s.attrs.Width, s.attrs.Height))
		xdraw.ApproxBiLinear.Scale(out, out.Bounds(), s.back, s.back.Bounds(), xdraw.Src, nil)
		return out
	}

	out := image.NewRGBA(s.back.Bounds())
	copy(out.Pix, s.back.Pix)
	return out
}

// Width returns the back buffer width.
func (s *SurfaceImpl) Width() int {
	if s.back == nil {
		return 0
	}
	return s.back.Bounds().Dx()
}

// Height returns the back buffer height.
func (s *SurfaceImpl) Height() int {
	if s.back == nil {
		return 0
	}
	return s.back.Bounds().Dy()
}

// SyncValues reports microseconds since Initialize as UST and the swap
// count as both MSC and SBC.
func (s *SurfaceImpl) SyncValues() (drawable.SyncValues, error) {
	//nolint:gosec // G115: elapsed time since init is non-negative
	return drawable.SyncValues{
		UST: uint64(time.Since(s.initTime).Microseconds()),
		MSC: s.swapCount,
		SBC: s.swapCount,
	}, nil
}

// SetSwapInterval stores the interval. The software backend does not
// throttle, so the value only affects SwapInterval queries.
func (s *SurfaceImpl) SetSwapInterval(interval int) {
	if interval < 0 {
		interval = 0
	}
	s.swapInterval = interval
}

// SwapInterval returns the last value passed to SetSwapInterval.
func (s *SurfaceImpl) SwapInterval() int {
	return s.swapInterval
}

// QuerySurfaceHandle exposes the process-local native handle via
// AttributeNativeHandle.
func (s *SurfaceImpl) QuerySurfaceHandle(attribute int) (uintptr, error) {
	if attribute != AttributeNativeHandle {
		return 0, fmt.Errorf("%w: %#x", ErrUnsupportedAttribute, attribute)
	}
	switch s.kind {
	case drawable.KindWindow:
		return uintptr(s.winHandle), nil
	case drawable.KindPixmap:
		return uintptr(s.pixHandle), nil
	default:
		return 0, fmt.Errorf("%w: %#x", ErrUnsupportedAttribute, attribute)
	}
}

// Destroy drops all buffer references. Idempotent.
func (s *SurfaceImpl) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.back = nil
	s.client = nil
	s.window = nil
	s.texBound = false
}

// Destroyed reports whether Destroy has run.
func (s *SurfaceImpl) Destroyed() bool {
	return s.destroyed
}

// BackBuffer returns the buffer rendering draws into. For pixmap surfaces
// this is the registered pixmap itself. Nil after Destroy.
func (s *SurfaceImpl) BackBuffer() *image.RGBA {
	return s.back
}

// Ensure SurfaceImpl implements the backend interface.
var _ drawable.SurfaceImpl = (*SurfaceImpl)(nil)
