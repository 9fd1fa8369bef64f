package main

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/mpingram/chip8/display"
)

// OpenGLRenderer paints the Chip-8 screen into a GLFW window.
type OpenGLRenderer struct {
	window *glfw.Window
	scale  int
	// pixels holds one luminance byte per Chip-8 pixel, top row first.
	pixels []byte
}

// NewOpenGLRenderer prepares the window's GL context. The window's
// framebuffer must be an integer multiple of 64x32.
func NewOpenGLRenderer(window *glfw.Window) (*OpenGLRenderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing opengl: %w", err)
	}

	width, height := window.GetFramebufferSize()
	scale, err := display.Scale(width, height)
	if err != nil {
		return nil, err
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return &OpenGLRenderer{
		window: window,
		scale:  scale,
		pixels: make([]byte, display.Width*display.Height),
	}, nil
}

// Update copies the screen into the renderer if it changed.
func (r *OpenGLRenderer) Update(screen *display.Screen) {
	frame, changed := screen.Frame()
	if !changed {
		return
	}
	for y, row := range frame {
		for x, on := range row {
			var lum byte
			if on {
				lum = 0xff
			}
			r.pixels[y*display.Width+x] = lum
		}
	}
}

// Render draws the last updated frame and swaps buffers.
func (r *OpenGLRenderer) Render() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	// glDrawPixels fills upwards from the raster position, so start at the
	// top-left corner and flip vertically.
	gl.RasterPos2f(-1, 1)
	gl.PixelZoom(float32(r.scale), -float32(r.scale))
	gl.DrawPixels(display.Width, display.Height, gl.LUMINANCE, gl.UNSIGNED_BYTE, gl.Ptr(r.pixels))

	r.window.SwapBuffers()
}
