package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestGLAttributes(t *testing.T) {
	attrs := glAttributes(Config{})
	want := map[sdl.GLattr]int{
		sdl.GL_CONTEXT_MAJOR_VERSION: 4,
		sdl.GL_CONTEXT_MINOR_VERSION: 1,
		sdl.GL_CONTEXT_PROFILE_MASK:  sdl.GL_CONTEXT_PROFILE_CORE,
		sdl.GL_DEPTH_SIZE:            24,
	}
	got := make(map[sdl.GLattr]int)
	for _, a := range attrs {
		got[a.attr] = a.value
	}
	for attr, v := range want {
		if got[attr] != v {
			t.Errorf("attribute %d = %d, want %d", attr, got[attr], v)
		}
	}
	if _, ok := got[sdl.GL_MULTISAMPLESAMPLES]; ok {
		t.Error("expected no multisampling without samples")
	}

	got = make(map[sdl.GLattr]int)
	for _, a := range glAttributes(Config{Samples: 4}) {
		got[a.attr] = a.value
	}
	if got[sdl.GL_MULTISAMPLEBUFFERS] != 1 || got[sdl.GL_MULTISAMPLESAMPLES] != 4 {
		t.Errorf("expected 4x multisampling, got %v", got)
	}
}

func TestWindowFlags(t *testing.T) {
	flags := windowFlags(Config{})
	if flags&sdl.WINDOW_OPENGL == 0 || flags&sdl.WINDOW_RESIZABLE == 0 {
		t.Errorf("expected a resizable GL window, got %#x", flags)
	}
	if flags&sdl.WINDOW_FULLSCREEN_DESKTOP != 0 {
		t.Error("expected windowed mode by default")
	}
	if windowFlags(Config{Fullscreen: true})&sdl.WINDOW_FULLSCREEN_DESKTOP == 0 {
		t.Error("expected desktop fullscreen flag")
	}
}

func TestSwapInterval(t *testing.T) {
	if swapInterval(true) != 1 || swapInterval(false) != 0 {
		t.Error("vsync should map to swap interval 1, off to 0")
	}
}
