// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software provides a pure-Go surface backend backed by
// *image.RGBA buffers.
//
// The backend implements every surface kind:
//
//   - Window surfaces are double-buffered. Swap exchanges the back and
//     front buffers, so back buffer contents are destroyed by a swap.
//     PostSubBuffer copies a sub-rectangle to the front buffer instead.
//   - Pbuffer surfaces are single-buffered and preserved across swaps.
//     They may wrap an externally allocated *image.RGBA client buffer.
//   - Pixmap surfaces draw directly into a pixmap registered with
//     RegisterPixmap.
//
// Native window and pixmap handles are process-local: obtain them from
// CreateWindow and RegisterPixmap rather than from the platform.
//
// The package registers itself with the drawable registry under the name
// "software" at priority 10:
//
//	import _ "github.com/gogpu/drawable/backend/software"
//
//	factory, err := drawable.FactoryByName("software")
package software
