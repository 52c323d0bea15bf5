// Package ggblit drives blit, stretch-blit and tile-blit operations of the
// gg 2D graphics library and measures their throughput.
//
// # Overview
//
// An ImageProvider decodes an image into a source Surface. A Display is the
// primary flipping surface: blits render into its back buffer and Flip
// converts the back buffer into the front buffer's pixel format. A fixed
// point Matrix transforms every blit. Benchmark repeats stretch blits for a
// fixed time and reports pixels per second.
//
//	p, _ := ggblit.OpenProvider(ctx, "photo.png")
//	desc, _ := p.SurfaceDescription()
//	src, _ := ggblit.CreateSurface(desc)
//	_ = p.RenderTo(src)
//
//	d, _ := ggblit.CreateDisplay(ggblit.SurfaceDescription{})
//	_ = d.SetMatrix(ggblit.RotateMatrix)
//	d.StretchBlit(src)
//	_ = d.Flip()
//
// # Acceleration
//
// Rendering uses gg's CPU rasterizer unless a GPU accelerator is
// registered, typically by importing github.com/gogpu/gg/gpu. The
// ggblit command does that unless built with the nogpu tag. Flip's pixel
// format conversion runs on a small pool of worker goroutines.
//
// # Pixel formats
//
// Surfaces use the library's storage formats (Gray8, Gray16, RGB8, RGBA8,
// RGBAPremul, BGRA8, BGRAPremul). The back buffer is always premultiplied
// RGBA; the front buffer may use any of them.
package ggblit
