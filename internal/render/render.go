// Package render draws the world into a terminal with tcell: blue filled
// circles for players (green for the highlighted one), red dots for
// pellets, on an inverted-Y canvas scaled to the screen. Purely a one-way
// side effect; the engine runs identically without it.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/talgya/blobworld/internal/world"
)

// Config controls the terminal renderer.
type Config struct {
	// FPS is the target frame rate; Frame sleeps to hold it.
	FPS int
	// Highlight is the player index drawn green, -1 for none.
	Highlight int
	// WorldSize converts the radii reported in Info (world units) into
	// the normalized space observations use.
	WorldSize float64
}

// Terminal renders observations into a tcell screen.
type Terminal struct {
	screen    tcell.Screen
	fps       int
	highlight int
	worldSize float64
	lastFrame time.Time
}

// NewTerminal initializes the screen. The caller must Close it to restore
// the terminal.
func NewTerminal(cfg Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("render: init screen: %w", err)
	}
	screen.HideCursor()
	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	return &Terminal{
		screen:    screen,
		fps:       fps,
		highlight: cfg.Highlight,
		worldSize: cfg.WorldSize,
	}, nil
}

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack)
	stylePlayer     = tcell.StyleDefault.Background(tcell.ColorBlue)
	styleHighlight  = tcell.StyleDefault.Background(tcell.ColorGreen)
	stylePellet     = tcell.StyleDefault.Background(tcell.ColorRed)
)

// Frame draws one observation and sleeps out the remainder of the frame
// budget so playback holds the target rate.
func (t *Terminal) Frame(obs *world.Observation, info *world.Info) {
	t.screen.Fill(' ', styleBackground)

	sw, sh := t.screen.Size()
	// Terminal cells are roughly twice as tall as wide; give the square
	// world a 2:1 cell footprint so circles look circular.
	side := sh
	if sw/2 < side {
		side = sw / 2
	}
	if side < 1 {
		side = 1
	}

	for k := range obs.PelletLocations {
		cx, cy := t.cell(obs.PelletLocations[k], side)
		t.screen.SetContent(cx, cy, ' ', nil, stylePellet)
		t.screen.SetContent(cx+1, cy, ' ', nil, stylePellet)
	}

	for i := range obs.PlayerLocations {
		if !obs.PlayerIsAlive[i] {
			continue
		}
		style := stylePlayer
		if i == t.highlight {
			style = styleHighlight
		}
		t.fillCircle(obs.PlayerLocations[i], info.PlayerRadii[i]/t.worldSize, side, style)
	}

	t.screen.Show()
	t.pace()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

var _ world.Renderer = (*Terminal)(nil)

// cell maps a normalized world position to screen coordinates, flipping Y
// so world-up is screen-up.
func (t *Terminal) cell(pos [2]float64, side int) (int, int) {
	cx := int(pos[0] * float64(side) * 2)
	cy := int((1 - pos[1]) * float64(side))
	if cy >= side {
		cy = side - 1
	}
	return cx, cy
}

// fillCircle paints every cell whose world-space center lies inside the
// circle, with a one-cell floor so small players never vanish.
func (t *Terminal) fillCircle(center [2]float64, radius float64, side int, style tcell.Style) {
	ccx, ccy := t.cell(center, side)
	rCells := int(radius * float64(side))
	if rCells < 1 {
		t.screen.SetContent(ccx, ccy, ' ', nil, style)
		t.screen.SetContent(ccx+1, ccy, ' ', nil, style)
		return
	}
	for dy := -rCells; dy <= rCells; dy++ {
		for dx := -2 * rCells; dx <= 2*rCells; dx++ {
			// Halve dx to undo the 2:1 cell footprint.
			fx := float64(dx) / 2
			fy := float64(dy)
			if fx*fx+fy*fy <= float64(rCells*rCells) {
				t.screen.SetContent(ccx+dx, ccy+dy, ' ', nil, style)
			}
		}
	}
}

// pace sleeps until the next frame slot.
func (t *Terminal) pace() {
	budget := time.Second / time.Duration(t.fps)
	now := time.Now()
	if elapsed := now.Sub(t.lastFrame); elapsed < budget {
		time.Sleep(budget - elapsed)
	}
	t.lastFrame = time.Now()
}
