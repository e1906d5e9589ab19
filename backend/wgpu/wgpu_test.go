// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/drawable"
)

// mockDevice is a test double for hal.Device that returns labeled
// textures, so tests can tell the back and front textures apart.
type mockDevice struct {
	texturesCreated   int
	texturesDestroyed int
	viewsCreated      int
	viewsDestroyed    int
}

func (d *mockDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.texturesCreated++
	return &mockTexture{label: desc.Label}, nil
}

func (d *mockDevice) DestroyTexture(_ hal.Texture) {
	d.texturesDestroyed++
}

func (d *mockDevice) CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	d.viewsCreated++
	return &mockTextureView{texture: texture, label: desc.Label}, nil
}

func (d *mockDevice) DestroyTextureView(_ hal.TextureView) {
	d.viewsDestroyed++
}

// Remaining hal.Device methods are no-ops; surface code never calls them.

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateBuffer(_ *hal.BufferDescriptor) (hal.Buffer, error) { return nil, nil }
func (d *mockDevice) DestroyBuffer(_ hal.Buffer)                               {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateSampler(_ *hal.SamplerDescriptor) (hal.Sampler, error) { return nil, nil }
func (d *mockDevice) DestroySampler(_ hal.Sampler)                                {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateBindGroupLayout(_ *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	return nil, nil
}
func (d *mockDevice) DestroyBindGroupLayout(_ hal.BindGroupLayout) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateBindGroup(_ *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return nil, nil
}
func (d *mockDevice) DestroyBindGroup(_ hal.BindGroup) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreatePipelineLayout(_ *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	return nil, nil
}
func (d *mockDevice) DestroyPipelineLayout(_ hal.PipelineLayout) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateShaderModule(_ *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return nil, nil
}
func (d *mockDevice) DestroyShaderModule(_ hal.ShaderModule) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateRenderPipeline(_ *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return nil, nil
}
func (d *mockDevice) DestroyRenderPipeline(_ hal.RenderPipeline) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateComputePipeline(_ *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error) {
	return nil, nil
}
func (d *mockDevice) DestroyComputePipeline(_ hal.ComputePipeline) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateCommandEncoder(_ *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	return nil, nil
}

func (d *mockDevice) MapBuffer(_ hal.Buffer, _, _ uint64) (hal.BufferMapping, error) {
	return hal.BufferMapping{}, nil
}
func (d *mockDevice) UnmapBuffer(_ hal.Buffer) error { return nil }

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateQuerySet(_ *hal.QuerySetDescriptor) (hal.QuerySet, error) {
	return nil, nil
}
func (d *mockDevice) DestroyQuerySet(_ hal.QuerySet) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateRenderBundleEncoder(_ *hal.RenderBundleEncoderDescriptor) (hal.RenderBundleEncoder, error) {
	return nil, nil
}
func (d *mockDevice) DestroyRenderBundle(_ hal.RenderBundle) {}

func (d *mockDevice) FreeCommandBuffer(_ hal.CommandBuffer) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockDevice) CreateFence() (hal.Fence, error) { return nil, nil }
func (d *mockDevice) DestroyFence(_ hal.Fence)        {}
func (d *mockDevice) Wait(_ hal.Fence, _ uint64, _ time.Duration) (bool, error) {
	return true, nil
}
func (d *mockDevice) ResetFence(_ hal.Fence) error             { return nil }
func (d *mockDevice) GetFenceStatus(_ hal.Fence) (bool, error) { return true, nil }
func (d *mockDevice) WaitIdle() error                          { return nil }
func (d *mockDevice) Destroy()                                 {}

type mockTexture struct {
	label string
}

func (t *mockTexture) Destroy()              {}
func (t *mockTexture) NativeHandle() uintptr { return 0 }

func (t *mockTexture) CurrentUsage() gputypes.TextureUsage { return 0 }
func (t *mockTexture) AddPendingRef()                      {}
func (t *mockTexture) DecPendingRef()                      {}

type mockTextureView struct {
	texture hal.Texture
	label   string
}

func (v *mockTextureView) Destroy()              {}
func (v *mockTextureView) NativeHandle() uintptr { return 0 }

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

func testConfig() *drawable.Config {
	return &drawable.Config{
		RenderTargetFormat: gputypes.TextureFormatBGRA8Unorm,
		DepthStencilFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

func newFactory(t *testing.T) (*Factory, func()) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	f, err := NewFactory(device, queue)
	if err != nil {
		cleanup()
		t.Fatalf("NewFactory failed: %v", err)
	}
	return f, cleanup
}

// TestNewFactoryNilDevice verifies the factory rejects a nil device.
func TestNewFactoryNilDevice(t *testing.T) {
	if _, err := NewFactory(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("error = %v, want ErrNilDevice", err)
	}
}

// TestPbufferSurface verifies texture creation and sizing.
func TestPbufferSurface(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	s, err := drawable.NewPbufferSurface(f, testConfig(), drawable.WithSize(64, 32))
	if err != nil {
		t.Fatalf("NewPbufferSurface failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if s.Width() != 64 || s.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", s.Width(), s.Height())
	}
	if s.SwapBehavior() != drawable.SwapBehaviorPreserved {
		t.Errorf("SwapBehavior() = %v, want preserved", s.SwapBehavior())
	}

	impl := s.Impl().(*SurfaceImpl)
	if impl.BackTexture() == nil {
		t.Error("BackTexture nil after Initialize")
	}
	if impl.BackTextureView() == nil {
		t.Error("BackTextureView nil after Initialize")
	}
	if impl.DepthStencilTextureView() == nil {
		t.Error("DepthStencilTextureView nil with depth/stencil config")
	}

	s.RequestDestroy()
	if !impl.Destroyed() {
		t.Error("impl not destroyed")
	}
	if impl.BackTexture() != nil {
		t.Error("BackTexture retained after destroy")
	}
}

// TestPbufferNoDepthStencil verifies no depth texture is created when the
// config declares no depth/stencil format.
func TestPbufferNoDepthStencil(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	cfg := &drawable.Config{RenderTargetFormat: gputypes.TextureFormatBGRA8Unorm}
	s, err := drawable.NewPbufferSurface(f, cfg, drawable.WithSize(4, 4))
	if err != nil {
		t.Fatalf("NewPbufferSurface failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer s.RequestDestroy()

	if s.Impl().(*SurfaceImpl).DepthStencilTextureView() != nil {
		t.Error("depth/stencil view created without format")
	}
}

// TestWindowSwap verifies window surfaces exchange texture roles on swap.
// A mock device hands out labeled textures so the two roles can be told
// apart; the noop HAL's textures are zero-size structs and compare equal.
func TestWindowSwap(t *testing.T) {
	device := &mockDevice{}
	f, err := NewFactory(device, nil)
	if err != nil {
		t.Fatalf("NewFactory failed: %v", err)
	}

	cfg := &drawable.Config{RenderTargetFormat: gputypes.TextureFormatBGRA8Unorm}
	s, err := drawable.NewWindowSurface(f, cfg, 1, drawable.WithSize(8, 8))
	if err != nil {
		t.Fatalf("NewWindowSurface failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer s.RequestDestroy()

	if s.SwapBehavior() != drawable.SwapBehaviorDestroyed {
		t.Errorf("SwapBehavior() = %v, want destroyed", s.SwapBehavior())
	}
	if device.texturesCreated != 2 {
		t.Fatalf("textures created = %d, want back and front", device.texturesCreated)
	}

	impl := s.Impl().(*SurfaceImpl)
	backLabel := impl.BackTexture().(*mockTexture).label

	if err := s.Swap(); err != nil {
		t.Fatalf("Swap failed: %v", err)
	}
	if got := impl.BackTexture().(*mockTexture).label; got == backLabel {
		t.Errorf("back texture label = %q after swap, want front texture", got)
	}

	if err := s.Swap(); err != nil {
		t.Fatalf("second Swap failed: %v", err)
	}
	if got := impl.BackTexture().(*mockTexture).label; got != backLabel {
		t.Errorf("back texture label = %q after two swaps, want %q", got, backLabel)
	}

	sv, err := s.SyncValues()
	if err != nil {
		t.Fatalf("SyncValues failed: %v", err)
	}
	if sv.SBC != 2 {
		t.Errorf("SBC = %d, want 2", sv.SBC)
	}
}

// TestClientBufferTexture verifies wrapped textures are used as the back
// texture and survive Destroy.
func TestClientBufferTexture(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	tex, err := f.Device().CreateTexture(&hal.TextureDescriptor{
		Label:         "client",
		Size:          hal.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	defer f.Device().DestroyTexture(tex)

	cfg := &drawable.Config{RenderTargetFormat: gputypes.TextureFormatBGRA8Unorm}
	s, err := drawable.NewPbufferSurfaceFromClientBuffer(f, cfg,
		drawable.ClientBufferTexture, tex, drawable.WithSize(4, 4))
	if err != nil {
		t.Fatalf("NewPbufferSurfaceFromClientBuffer failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	impl := s.Impl().(*SurfaceImpl)
	if impl.BackTexture() != tex {
		t.Error("back texture is not the client texture")
	}

	// Destroy must not touch the caller-owned texture; releasing it again
	// in the deferred DestroyTexture above would double-free otherwise.
	s.RequestDestroy()
	if !impl.Destroyed() {
		t.Error("impl not destroyed")
	}
}

// TestClientBufferRejectsWrongKind verifies type and kind checking.
func TestClientBufferRejectsWrongKind(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	cfg := &drawable.Config{RenderTargetFormat: gputypes.TextureFormatBGRA8Unorm}

	_, err := drawable.NewPbufferSurfaceFromClientBuffer(f, cfg,
		drawable.ClientBufferPixels, "pixels")
	if !errors.Is(err, ErrUnsupportedClientBuffer) {
		t.Errorf("error = %v, want ErrUnsupportedClientBuffer for pixel kind", err)
	}

	_, err = drawable.NewPbufferSurfaceFromClientBuffer(f, cfg,
		drawable.ClientBufferTexture, "not a texture")
	if !errors.Is(err, ErrUnsupportedClientBuffer) {
		t.Errorf("error = %v, want ErrUnsupportedClientBuffer for wrong type", err)
	}
}

// TestPixmapUnsupported verifies pixmap creation fails up front.
func TestPixmapUnsupported(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	_, err := drawable.NewPixmapSurface(f, testConfig(), 1)
	if !errors.Is(err, ErrPixmapUnsupported) {
		t.Errorf("error = %v, want ErrPixmapUnsupported", err)
	}
}

// TestBindTexImage verifies bind gating on the texture format attribute.
func TestBindTexImage(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	s, err := drawable.NewPbufferSurface(f, testConfig(),
		drawable.WithSize(4, 4),
		drawable.WithTextureFormat(drawable.TexFormatRGBA, drawable.TexTarget2D))
	if err != nil {
		t.Fatalf("NewPbufferSurface failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer s.RequestDestroy()

	impl := s.Impl().(*SurfaceImpl)
	if err := impl.BindTexImage(drawable.BackBuffer); err != nil {
		t.Fatalf("BindTexImage failed: %v", err)
	}
	if err := impl.ReleaseTexImage(drawable.BackBuffer); err != nil {
		t.Fatalf("ReleaseTexImage failed: %v", err)
	}
	if err := impl.ReleaseTexImage(drawable.BackBuffer); !errors.Is(err, ErrNotBound) {
		t.Errorf("second release error = %v, want ErrNotBound", err)
	}

	plain, err := drawable.NewPbufferSurface(f, testConfig(), drawable.WithSize(4, 4))
	if err != nil {
		t.Fatalf("NewPbufferSurface failed: %v", err)
	}
	if err := plain.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plain.RequestDestroy()

	err = plain.Impl().(*SurfaceImpl).BindTexImage(drawable.BackBuffer)
	if !errors.Is(err, ErrNoTextureFormat) {
		t.Errorf("error = %v, want ErrNoTextureFormat", err)
	}
}

// TestQueryHandleUnsupported verifies the backend exposes no handles.
func TestQueryHandleUnsupported(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	s, err := drawable.NewPbufferSurface(f, testConfig(), drawable.WithSize(2, 2))
	if err != nil {
		t.Fatalf("NewPbufferSurface failed: %v", err)
	}
	if err := s.Initialize(drawable.NewDisplay(nil)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer s.RequestDestroy()

	if _, err := s.QuerySurfaceHandle(1); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Errorf("error = %v, want ErrUnsupportedAttribute", err)
	}
}

// TestRegister verifies registry wiring at priority 100.
func TestRegister(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	Register(device, queue)
	defer drawable.UnregisterBackend("wgpu")

	factory, err := drawable.FactoryByName("wgpu")
	if err != nil {
		t.Fatalf("FactoryByName(wgpu) failed: %v", err)
	}
	if _, ok := factory.(*Factory); !ok {
		t.Errorf("factory type = %T, want *Factory", factory)
	}

	def, err := drawable.DefaultFactory()
	if err != nil {
		t.Fatalf("DefaultFactory failed: %v", err)
	}
	if _, ok := def.(*Factory); !ok {
		t.Errorf("default factory type = %T, want *Factory", def)
	}
}

// TestNegativeSizeRejected verifies factory-level size validation.
func TestNegativeSizeRejected(t *testing.T) {
	f, cleanup := newFactory(t)
	defer cleanup()

	if _, err := drawable.NewPbufferSurface(f, testConfig(), drawable.WithSize(-1, 1)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("pbuffer error = %v, want ErrInvalidSize", err)
	}
	if _, err := drawable.NewWindowSurface(f, testConfig(), 1, drawable.WithSize(1, -1)); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("window error = %v, want ErrInvalidSize", err)
	}
}
