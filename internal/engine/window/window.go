// Package window opens the SDL2 window and the OpenGL 4.1 core context the
// viewer draws into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/logger"
)

func init() {
	// GL contexts are bound to the OS thread that created them.
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// Window owns an SDL window and its GL context.
type Window struct {
	cfg  Config
	win  *sdl.Window
	ctx  sdl.GLContext
	log  *zap.Logger
	quit bool // SDL was initialized by this window
}

type glAttr struct {
	attr  sdl.GLattr
	value int
}

// glAttributes lists the context attributes for cfg. 4.1 core is the
// newest profile macOS offers.
func glAttributes(cfg Config) []glAttr {
	attrs := []glAttr{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
	if cfg.Samples > 0 {
		attrs = append(attrs,
			glAttr{sdl.GL_MULTISAMPLEBUFFERS, 1},
			glAttr{sdl.GL_MULTISAMPLESAMPLES, cfg.Samples},
		)
	}
	return attrs
}

func windowFlags(cfg Config) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// New opens a window with a current GL context.
func New(cfg Config) (*Window, error) {
	w := &Window{cfg: cfg, log: logger.Named("window")}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	w.quit = true

	for _, a := range glAttributes(cfg) {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			w.Close()
			return nil, fmt.Errorf("gl attribute %d=%d: %w", a.attr, a.value, err)
		}
	}

	var err error
	w.win, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), windowFlags(cfg))
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("create window: %w", err)
	}

	if w.ctx, err = w.win.GLCreateContext(); err != nil {
		w.Close()
		return nil, fmt.Errorf("create gl context: %w", err)
	}

	if err := sdl.GLSetSwapInterval(swapInterval(cfg.VSync)); err != nil {
		w.log.Warn("swap interval not applied", zap.Bool("vsync", cfg.VSync), zap.Error(err))
	}

	dw, dh := w.GetSize()
	w.log.Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", dw),
		zap.Int("height", dh),
		zap.Int("samples", cfg.Samples),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)
	return w, nil
}

// Close releases the context and window, and shuts SDL down. It is safe on
// a partially opened window.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
		w.ctx = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	if w.quit {
		sdl.Quit()
		w.quit = false
	}
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// GetSize returns the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) GetSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}
