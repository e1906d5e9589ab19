// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/drawable"
)

// SurfaceImpl is a HAL-texture-backed surface implementation.
//
// The back texture carries rendering output; window surfaces additionally
// keep a front texture and exchange the two on swap. A depth/stencil
// texture is created when the config declares a depth/stencil format.
type SurfaceImpl struct {
	kind    drawable.SurfaceKind
	state   *drawable.SurfaceState
	attrs   drawable.Attributes
	factory *Factory

	client hal.Texture

	back      hal.Texture
	backView  hal.TextureView
	front     hal.Texture
	frontView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView

	width  int
	height int

	texBound     bool
	swapInterval int
	initTime     time.Time
	swapCount    uint64
	destroyed    bool
}

// Initialize creates the backing textures on the factory's device.
func (s *SurfaceImpl) Initialize(display *drawable.Display) error {
	s.width, s.height = s.attrs.Width, s.attrs.Height
	if s.width < 1 {
		s.width = 1
	}
	if s.height < 1 {
		s.height = 1
	}

	cfg := s.state.Config
	label := cfg.Label
	if label == "" {
		label = "drawable_" + s.kind.String()
	}

	if s.client != nil {
		s.back = s.client
	} else {
		back, view, err := s.createColorTexture(label + "_back")
		if err != nil {
			return err
		}
		s.back, s.backView = back, view
	}

	if s.kind == drawable.KindWindow {
		front, view, err := s.createColorTexture(label + "_front")
		if err != nil {
			s.destroyTextures()
			return err
		}
		s.front, s.frontView = front, view
	}

	if cfg.DepthStencilFormat != gputypes.TextureFormatUndefined {
		device := s.factory.device
		//nolint:gosec // G115: dimensions clamped to >= 1 above
		depth, err := device.CreateTexture(&hal.TextureDescriptor{
			Label: label + "_depth_stencil",
			Size: hal.Extent3D{
				Width:              uint32(s.width),
				Height:             uint32(s.height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   s.sampleCount(),
			Dimension:     gputypes.TextureDimension2D,
			Format:        cfg.DepthStencilFormat,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			s.destroyTextures()
			return fmt.Errorf("wgpu: create depth/stencil texture: %w", err)
		}
		s.depth = depth

		depthView, err := device.CreateTextureView(depth, &hal.TextureViewDescriptor{
			Label: label + "_depth_stencil_view",
		})
		if err != nil {
			s.destroyTextures()
			return fmt.Errorf("wgpu: create depth/stencil view: %w", err)
		}
		s.depthView = depthView
	}

	s.initTime = time.Now()
	return nil
}

func (s *SurfaceImpl) createColorTexture(label string) (hal.Texture, hal.TextureView, error) {
	device := s.factory.device

	usage := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc
	if s.attrs.TextureFormat != drawable.TexFormatNone {
		usage |= gputypes.TextureUsageTextureBinding
	}

	//nolint:gosec // G115: dimensions clamped to >= 1 in Initialize
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(s.width),
			Height:             uint32(s.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   s.sampleCount(),
		Dimension:     gputypes.TextureDimension2D,
		Format:        s.state.Config.RenderTargetFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("wgpu: create color texture: %w", err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("wgpu: create color view: %w", err)
	}

	return tex, view, nil
}

func (s *SurfaceImpl) sampleCount() uint32 {
	if s.state.Config.Samples > 1 {
		//nolint:gosec // G115: sample counts are small positives
		return uint32(s.state.Config.Samples)
	}
	return 1
}

// SwapBehavior reports Destroyed for window surfaces, whose swap exchanges
// the texture roles, and Preserved for off-screen surfaces.
func (s *SurfaceImpl) SwapBehavior() drawable.SwapBehavior {
	if s.kind == drawable.KindWindow {
		return drawable.SwapBehaviorDestroyed
	}
	return drawable.SwapBehaviorPreserved
}

// Swap presents the back texture. Window surfaces exchange the back and
// front texture roles; off-screen surfaces only advance the counters.
func (s *SurfaceImpl) Swap() error {
	if s.kind == drawable.KindWindow {
		s.back, s.front = s.front, s.back
		s.backView, s.frontView = s.frontView, s.backView
	}
	s.swapCount++
	return nil
}

// SwapWithDamage presents the back texture. The damage hint is accepted
// but the whole texture is presented; without swapchain integration there
// is no partial-present fast path.
func (s *SurfaceImpl) SwapWithDamage(rects []drawable.Rect) error {
	return s.Swap()
}

// PostSubBuffer is not supported without swapchain integration.
func (s *SurfaceImpl) PostSubBuffer(x, y, width, height int) error {
	return fmt.Errorf("wgpu: post sub buffer not supported")
}

// IsPostSubBufferSupported reports false.
func (s *SurfaceImpl) IsPostSubBufferSupported() bool {
	return false
}

// BindTexImage makes the back texture available for sampling.
// The surface must have been created with a texture format.
func (s *SurfaceImpl) BindTexImage(buffer drawable.RenderBuffer) error {
	if s.attrs.TextureFormat == drawable.TexFormatNone {
		return ErrNoTextureFormat
	}
	s.texBound = true
	return nil
}

// ReleaseTexImage ends sampling of the back texture.
func (s *SurfaceImpl) ReleaseTexImage(buffer drawable.RenderBuffer) error {
	if !s.texBound {
		return ErrNotBound
	}
	s.texBound = false
	return nil
}

// Width returns the surface width.
func (s *SurfaceImpl) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *SurfaceImpl) Height() int {
	return s.height
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

// SetSwapInterval stores the interval; presentation is caller-driven, so
// the value only affects SwapInterval queries.
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

// QuerySurfaceHandle always fails; the wgpu backend exposes no native
// handles.
func (s *SurfaceImpl) QuerySurfaceHandle(attribute int) (uintptr, error) {
	return 0, fmt.Errorf("%w: %#x", ErrUnsupportedAttribute, attribute)
}

// Destroy releases all textures created by this surface. A client-provided
// texture stays owned by the caller and is not destroyed. Idempotent.
func (s *SurfaceImpl) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.destroyTextures()
}

func (s *SurfaceImpl) destroyTextures() {
	device := s.factory.device

	if s.depthView != nil {
		device.DestroyTextureView(s.depthView)
		s.depthView = nil
	}
	if s.depth != nil {
		device.DestroyTexture(s.depth)
		s.depth = nil
	}
	if s.frontView != nil {
		device.DestroyTextureView(s.frontView)
		s.frontView = nil
	}
	if s.front != nil {
		device.DestroyTexture(s.front)
		s.front = nil
	}
	if s.backView != nil {
		device.DestroyTextureView(s.backView)
		s.backView = nil
	}
	if s.back != nil && s.back != s.client {
		device.DestroyTexture(s.back)
	}
	s.back = nil
	s.client = nil
}

// Destroyed reports whether Destroy has run.
func (s *SurfaceImpl) Destroyed() bool {
	return s.destroyed
}

// BackTexture returns the texture rendering draws into. Nil after Destroy.
func (s *SurfaceImpl) BackTexture() hal.Texture {
	return s.back
}

// BackTextureView returns the render-attachment view of the back texture.
// Nil after Destroy, and nil for client-buffer surfaces.
func (s *SurfaceImpl) BackTextureView() hal.TextureView {
	return s.backView
}

// DepthStencilTextureView returns the depth/stencil view, or nil when the
// config declares no depth/stencil format.
func (s *SurfaceImpl) DepthStencilTextureView() hal.TextureView {
	return s.depthView
}

// Ensure SurfaceImpl implements the backend interface.
var _ drawable.SurfaceImpl = (*SurfaceImpl)(nil)
