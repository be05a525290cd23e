package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Row 0 is the top of the image.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float32 // NDC depth per pixel, smaller is nearer
}

// NewFrameBuffer allocates a black color buffer and a cleared depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
		Depth:  make([]float32, w*h),
	}
	fb.Clear(mgl32.Vec4{0, 0, 0, 1})
	return fb
}

// Clear fills the color buffer with c and resets depth to the far plane.
func (fb *FrameBuffer) Clear(c mgl32.Vec4) {
	r, g, b, a := to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = a
	}

	n := len(fb.Depth)
	if n == 0 {
		return
	}
	// copy-doubling
	fb.Depth[0] = float32(math.Inf(1))
	for i := 1; i < n; i *= 2 {
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// At returns the color at (x, y) in [0,1].
func (fb *FrameBuffer) At(x, y int) mgl32.Vec4 {
	i := (y*fb.Width + x) * 4
	return mgl32.Vec4{
		float32(fb.Color[i]) / 255,
		float32(fb.Color[i+1]) / 255,
		float32(fb.Color[i+2]) / 255,
		float32(fb.Color[i+3]) / 255,
	}
}

// DepthAt returns the stored depth at (x, y); +Inf where nothing was drawn.
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

// blend writes c over the pixel at index i using source alpha. Colors are
// clamped to [0,1] first, like a normalized fixed point color attachment.
func (fb *FrameBuffer) blend(i int, c mgl32.Vec4) {
	a := clamp01(c[3])
	off := i * 4
	for k := 0; k < 3; k++ {
		dst := float32(fb.Color[off+k]) / 255
		fb.Color[off+k] = to8(clamp01(c[k])*a + dst*(1-a))
	}
	dstA := float32(fb.Color[off+3]) / 255
	fb.Color[off+3] = to8(a + dstA*(1-a))
}

// Image copies the color buffer into an image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

func clamp01(v float32) float32 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
