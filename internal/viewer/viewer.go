// Package viewer implements the interactive field viewer: the frame loop,
// background regeneration and config hot reload.
package viewer

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/export"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/internal/scene"
)

const title = "meadow"

// Viewer is the interactive viewer instance.
type Viewer struct {
	configPath string
	field      *scene.Field
	seed       uint64
	uniforms   renderer.GrassUniforms

	window   *window.Window
	renderer *renderer.Renderer
	grass    *renderer.GrassRenderer
	ground   *renderer.GroundRenderer
	input    *input.Input
	camera   *camera.OrbitCamera

	regen  *grass.Regenerator
	wind   *grass.WindClock
	paused bool
	mesh   *grass.Mesh

	log *zap.Logger
}

// New creates the window and GL resources. configPath, when not empty, is
// watched for changes.
func New(cfg *config.Config, configPath string) (*Viewer, error) {
	log := logger.Named("viewer")

	field, err := scene.NewField(cfg, logger.Named("field"))
	if err != nil {
		return nil, err
	}
	uniforms, err := uniformsFor(cfg)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		configPath: configPath,
		field:      field,
		uniforms:   uniforms,
		input:      input.New(),
		camera:     camera.NewOrbitCamera(),
		regen:      grass.NewRegenerator(logger.Named("regen")),
		wind:       grass.NewWindClock(cfg.Shading.WaveSpeed),
		log:        log,
	}

	// Window first, since the GL context must exist for the renderer.
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: cfg.Render.Fullscreen,
		VSync:      cfg.Render.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		Sky:    [3]float32{0.62, 0.78, 0.92},
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.grass, err = renderer.NewGrassRenderer()
	if err != nil {
		v.Close()
		return nil, err
	}
	if err := v.rebuildGround(); err != nil {
		v.Close()
		return nil, err
	}

	v.camera.FitField(cfg.Field.PlaneSize)

	log.Info("viewer initialized",
		zap.Int("blades", cfg.Field.BladeCount),
		zap.Float32("plane_size", cfg.Field.PlaneSize),
	)
	return v, nil
}

// Run drives the frame loop until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads := make(chan *config.Config, 1)
	if v.configPath != "" {
		err := config.Watch(ctx, v.configPath, func(cfg *config.Config, err error) {
			if err != nil {
				v.log.Warn("config reload failed", zap.Error(err))
				return
			}
			offerLatest(reloads, cfg)
		})
		if err != nil {
			v.log.Warn("config watch disabled", zap.String("path", v.configPath), zap.Error(err))
		}
	}

	v.seed = v.field.Request(ctx, v.regen)

	var windElapsed time.Duration
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for ctx.Err() == nil {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			break
		}
		if quit := v.handleInput(ctx); quit {
			break
		}

		select {
		case cfg := <-reloads:
			v.applyConfig(ctx, cfg)
		default:
		}

		select {
		case mesh := <-v.regen.Updates():
			v.mesh = mesh
			v.grass.Upload(mesh)
			v.window.SetTitle(fmt.Sprintf("%s: %d blades (seed %d)", title, mesh.BladeCount(), v.seed))
		default:
		}

		if !v.paused {
			windElapsed += dt
		}
		v.uniforms.Time = v.wind.Tick(windElapsed)
		v.uniforms.WaveSpeed = v.wind.WaveSpeed()

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	cancel()
	v.regen.Wait()
	if err := v.regen.Err(); err != nil {
		return fmt.Errorf("last regeneration: %w", err)
	}
	return nil
}

func (v *Viewer) handleInput(ctx context.Context) bool {
	for _, event := range v.input.Events() {
		if event.Type == input.EventWindowResize {
			w, h := v.window.GetSize()
			v.renderer.Resize(w, h)
		}
	}

	switch {
	case v.input.IsKeyPressed(sdl.SCANCODE_ESCAPE):
		return true
	case v.input.IsKeyPressed(sdl.SCANCODE_R):
		v.seed = uint64(time.Now().UnixNano())
		v.field.RequestSeed(ctx, v.regen, v.seed)
	case v.input.IsKeyPressed(sdl.SCANCODE_P):
		v.paused = !v.paused
		v.log.Info("wind", zap.Bool("paused", v.paused))
	case v.input.IsKeyPressed(sdl.SCANCODE_F):
		v.camera.FitField(v.field.Config().Field.PlaneSize)
	case v.input.IsKeyPressed(sdl.SCANCODE_E):
		v.exportMesh()
	}

	v.camera.HandleDrag(v.input.Drag(sdl.BUTTON_LEFT))
	if steps := v.input.Wheel(); steps != 0 {
		v.camera.HandleZoom(steps)
	}
	return false
}

// applyConfig swaps in a reloaded configuration. An invalid file keeps the
// current field.
func (v *Viewer) applyConfig(ctx context.Context, cfg *config.Config) {
	field, err := scene.NewField(cfg, logger.Named("field"))
	if err != nil {
		v.log.Warn("ignoring invalid config", zap.Error(err))
		return
	}
	uniforms, err := uniformsFor(cfg)
	if err != nil {
		v.log.Warn("ignoring invalid shading", zap.Error(err))
		return
	}

	old := v.field.Config()
	v.field = field
	uniforms.Time = v.uniforms.Time
	v.uniforms = uniforms
	v.wind.SetWaveSpeed(cfg.Shading.WaveSpeed)

	if cfg.Field.PlaneSize != old.Field.PlaneSize || cfg.Render.GroundTexture != old.Render.GroundTexture {
		if err := v.rebuildGround(); err != nil {
			v.log.Warn("ground rebuild failed", zap.Error(err))
		}
	}

	v.log.Info("config reloaded", zap.String("path", v.configPath))
	v.seed = v.field.Request(ctx, v.regen)
}

func (v *Viewer) rebuildGround() error {
	cfg := v.field.Config()

	var img image.Image
	if cfg.Render.GroundTexture {
		img = texture.GenerateGround(texture.DefaultGroundOptions(), grass.NewRand(v.field.Seed()))
	}
	ground, err := renderer.NewGroundRenderer(cfg.Field.PlaneSize, img)
	if err != nil {
		return err
	}
	if v.ground != nil {
		v.ground.Close()
	}
	v.ground = ground
	v.grass.SetTexture(img)
	return nil
}

func (v *Viewer) exportMesh() {
	if v.mesh == nil {
		return
	}
	path := filepath.Join(v.field.Config().Output.Dir, fmt.Sprintf("field-%d.obj", v.seed))
	if err := export.SaveOBJ(path, v.mesh, v.mesh.VertexNormals()); err != nil {
		v.log.Error("export failed", zap.String("path", path), zap.Error(err))
		return
	}
	v.log.Info("field exported", zap.String("path", path), zap.Int("blades", v.mesh.BladeCount()))
}

func (v *Viewer) render() {
	v.renderer.Begin()
	viewProj := v.camera.ViewProj(v.renderer.Aspect())
	v.ground.Draw(viewProj)
	v.grass.Draw(viewProj, v.uniforms)
	v.renderer.End()
}

// Close releases all resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	v.regen.Close()
	if v.grass != nil {
		v.grass.Close()
	}
	if v.ground != nil {
		v.ground.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// uniformsFor maps the shading section to shader uniforms.
func uniformsFor(cfg *config.Config) (renderer.GrassUniforms, error) {
	u := renderer.DefaultGrassUniforms()
	c, err := cfg.ColorRGB()
	if err != nil {
		return u, err
	}
	u.Color = c
	u.WaveSpeed = cfg.Shading.WaveSpeed
	u.Brightness = cfg.Shading.Brightness
	u.Contrast = cfg.Shading.Contrast
	u.TextureMix = cfg.Shading.TextureMix
	return u, nil
}

// offerLatest replaces any pending value in ch with cfg. Only one goroutine
// may send on ch.
func offerLatest(ch chan *config.Config, cfg *config.Config) {
	select {
	case <-ch:
	default:
	}
	ch <- cfg
}
