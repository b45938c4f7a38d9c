// Package viewer runs the interactive fly-over of a generated world.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/stone/internal/config"
	"github.com/Faultbox/stone/internal/engine/camera"
	"github.com/Faultbox/stone/internal/engine/debug"
	"github.com/Faultbox/stone/internal/engine/input"
	"github.com/Faultbox/stone/internal/engine/renderer"
	"github.com/Faultbox/stone/internal/engine/shader"
	"github.com/Faultbox/stone/internal/engine/window"
	"github.com/Faultbox/stone/internal/logger"
	"github.com/Faultbox/stone/internal/world"
)

// Title is the window title prefix.
const Title = "Stone"

// Viewer owns the window, GL program and camera for one world.
type Viewer struct {
	cfg     config.RenderConfig
	world   *world.World
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	program  *shader.Program
	camera   *camera.DriftCamera
	shots    *debug.Screenshots
}

// New opens a window and uploads the world mesh. Screenshots go to shotDir.
func New(cfg config.RenderConfig, shotDir string, w *world.World) (*Viewer, error) {
	v := &Viewer{cfg: cfg, world: w, shots: debug.NewScreenshots(shotDir, w.RunID)}

	var err error
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.program, err = shader.LoadProgram(cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to load shaders: %w", err)
	}

	v.renderer.Upload(w.Mesh, v.program)
	v.input = input.New()

	sx, sy, sz := w.Grid.Size()
	v.camera = camera.NewDriftCamera(sx, sy, sz, cfg.FOV, cfg.Near, cfg.Far)

	logger.Info("viewer initialized", zap.String("run", w.RunID))
	return v, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	fps := newFPSCounter(lastTime)

	logger.Info("starting frame loop")
	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		capture := false
		for _, event := range v.input.Events() {
			switch {
			case event.Type == input.EventWindowResize:
				v.renderer.Resize(v.window.Size())
			case event.Type == input.EventKeyDown && event.Key == sdl.SCANCODE_F12:
				capture = true
			}
		}

		v.camera.Advance(dt)
		modelView, mvp := v.camera.Matrices(v.renderer.Size())
		v.renderer.Draw(v.program, modelView, mvp)
		if capture {
			v.screenshot()
		}
		v.window.SwapBuffers()

		if n, ok := fps.tick(now); ok {
			v.window.SetTitle(fpsTitle(n))
			logger.Debug("fps", zap.Int("count", n), zap.Duration("dt", dt))
		}
	}
	return nil
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.program != nil {
		v.program.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func fpsTitle(n int) string {
	return fmt.Sprintf("%s | %d FPS", Title, n)
}

// fpsCounter counts frames per wall-clock second.
type fpsCounter struct {
	frames int
	since  time.Time
}

func newFPSCounter(start time.Time) *fpsCounter {
	return &fpsCounter{since: start}
}

// tick records a frame at now. Once a second has passed it returns the
// frame count for that window and starts a new one.
func (c *fpsCounter) tick(now time.Time) (int, bool) {
	c.frames++
	if now.Sub(c.since) < time.Second {
		return 0, false
	}
	n := c.frames
	c.frames = 0
	c.since = now
	return n, true
}
