// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drawable

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Display is the connection handed to surfaces at Initialize time.
//
// A Display carries the GPU device access provided by the host application.
// The drawable package RECEIVES the device from the host, it does not
// create one: backends that need a GPU device obtain it from the display's
// provider, while pure-CPU backends ignore it.
type Display struct {
	provider gpucontext.DeviceProvider
	label    string
}

// NewDisplay creates a display around the given device provider.
// A nil provider is replaced with NullDeviceProvider, which is sufficient
// for CPU-only backends.
func NewDisplay(provider gpucontext.DeviceProvider) *Display {
	if provider == nil {
		provider = NullDeviceProvider{}
	}
	return &Display{provider: provider}
}

// NewDisplayWithLabel creates a display with a debug label that backends
// may carry through to native resources.
func NewDisplayWithLabel(provider gpucontext.DeviceProvider, label string) *Display {
	d := NewDisplay(provider)
	d.label = label
	return d
}

// Provider returns the display's device provider. Never nil.
func (d *Display) Provider() gpucontext.DeviceProvider {
	return d.provider
}

// Label returns the display's debug label, or "" when none was set.
func (d *Display) Label() string {
	return d.label
}

// NullDeviceProvider is a DeviceProvider with nil implementations, used
// when no GPU device is available.
type NullDeviceProvider struct{}

// Device returns nil for the null provider.
func (NullDeviceProvider) Device() gpucontext.Device { return nil }

// Queue returns nil for the null provider.
func (NullDeviceProvider) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null provider.
func (NullDeviceProvider) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns the zero AdapterInfo, signaling that no adapter
// information is available.
func (NullDeviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

// SurfaceFormat returns undefined format for the null provider.
func (NullDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceProvider implements gpucontext.DeviceProvider.
var _ gpucontext.DeviceProvider = NullDeviceProvider{}
