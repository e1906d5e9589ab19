// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"sync"

	"github.com/gogpu/drawable"
)

// The software backend has no window system, so native handles are
// process-local indices into registries kept here.

type windowEntry struct {
	width, height int
	front         *image.RGBA
	mu            sync.Mutex
}

var (
	handleMu sync.Mutex
	nextID   uintptr = 1
	windows          = make(map[drawable.NativeWindow]*windowEntry)
	pixmaps          = make(map[drawable.NativePixmap]*image.RGBA)
)

// CreateWindow allocates a simulated native window of the given size and
// returns its handle. Pass the handle to drawable.NewWindowSurface.
func CreateWindow(width, height int) drawable.NativeWindow {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	handleMu.Lock()
	defer handleMu.Unlock()

	h := drawable.NativeWindow(nextID)
	nextID++
	windows[h] = &windowEntry{width: width, height: height}
	return h
}

// DestroyWindow releases a window created with CreateWindow.
func DestroyWindow(h drawable.NativeWindow) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(windows, h)
}

// WindowContents returns a copy of the window's front buffer: the pixels
// most recently presented by Swap or PostSubBuffer. Returns nil when the
// handle is unknown or nothing has been presented yet.
func WindowContents(h drawable.NativeWindow) *image.RGBA {
	handleMu.Lock()
	w, ok := windows[h]
	handleMu.Unlock()
	if !ok {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.front == nil {
		return nil
	}

	out := image.NewRGBA(w.front.Bounds())
	copy(out.Pix, w.front.Pix)
	return out
}

// RegisterPixmap wraps an existing *image.RGBA as a native pixmap and
// returns its handle. The image is used directly without copying: pixmap
// surfaces draw straight into it.
func RegisterPixmap(img *image.RGBA) drawable.NativePixmap {
	handleMu.Lock()
	defer handleMu.Unlock()

	h := drawable.NativePixmap(nextID)
	nextID++
	pixmaps[h] = img
	return h
}

// UnregisterPixmap releases a pixmap handle. The underlying image is not
// touched.
func UnregisterPixmap(h drawable.NativePixmap) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(pixmaps, h)
}

func lookupWindow(h drawable.NativeWindow) (*windowEntry, bool) {
	handleMu.Lock()
	defer handleMu.Unlock()
	w, ok := windows[h]
	return w, ok
}

func lookupPixmap(h drawable.NativePixmap) (*image.RGBA, bool) {
	handleMu.Lock()
	defer handleMu.Unlock()
	img, ok := pixmaps[h]
	return img, ok
}
