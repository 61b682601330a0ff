package render

import "image/color"

// FrameBuffer is a CPU-side RGBA surface for window chrome. Colors are
// premultiplied, matching both image/color and ebiten's WritePixels.
type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(w, h)
	return fb
}

// Resize reallocates when the size changed and reports whether it did.
func (fb *FrameBuffer) Resize(w, h int) bool {
	w, h = max(w, 1), max(h, 1)
	if fb.W == w && fb.H == h && len(fb.Pixels) == w*h*4 {
		return false
	}
	fb.W, fb.H = w, h
	fb.Pixels = make([]uint8, w*h*4)
	return true
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

// FillRect overwrites the clipped rectangle with c.
func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	x0, y0, x1, y1, ok := fb.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := y0; row < y1; row++ {
		for idx := (row*fb.W + x0) * 4; idx < (row*fb.W+x1)*4; idx += 4 {
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

// BlendRect composites c over the clipped rectangle.
func (fb *FrameBuffer) BlendRect(x, y, w, h int, c color.RGBA) {
	if c.A == 0xFF {
		fb.FillRect(x, y, w, h, c)
		return
	}
	if c.A == 0 {
		return
	}
	x0, y0, x1, y1, ok := fb.clip(x, y, w, h)
	if !ok {
		return
	}
	for row := y0; row < y1; row++ {
		for idx := (row*fb.W + x0) * 4; idx < (row*fb.W+x1)*4; idx += 4 {
			fb.blendAt(idx, c)
		}
	}
}

func (fb *FrameBuffer) StrokeRect(x, y, w, h, line int, c color.RGBA) {
	line = max(line, 1)
	fb.BlendRect(x, y, w, line, c)
	fb.BlendRect(x, y+h-line, w, line, c)
	fb.BlendRect(x, y+line, line, h-2*line, c)
	fb.BlendRect(x+w-line, y+line, line, h-2*line, c)
}

// FillCircle draws a disc centred on (cx, cy).
func (fb *FrameBuffer) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 {
		return
	}
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		y := cy + dy
		if y < 0 || y >= fb.H {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := cx + dx
			if x < 0 || x >= fb.W || dx*dx+dy*dy > r2 {
				continue
			}
			fb.blendAt((y*fb.W+x)*4, c)
		}
	}
}

// At returns the pixel at (x, y), or transparent outside the buffer.
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.W || y >= fb.H {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: fb.Pixels[i+3]}
}

func (fb *FrameBuffer) blendAt(idx int, c color.RGBA) {
	inv := 255 - uint32(c.A)
	p := fb.Pixels[idx : idx+4 : idx+4]
	p[0] = uint8(uint32(c.R) + (uint32(p[0])*inv+127)/255)
	p[1] = uint8(uint32(c.G) + (uint32(p[1])*inv+127)/255)
	p[2] = uint8(uint32(c.B) + (uint32(p[2])*inv+127)/255)
	p[3] = uint8(uint32(c.A) + (uint32(p[3])*inv+127)/255)
}

func (fb *FrameBuffer) clip(x, y, w, h int) (x0, y0, x1, y1 int, ok bool) {
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, fb.W), min(y+h, fb.H)
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}
