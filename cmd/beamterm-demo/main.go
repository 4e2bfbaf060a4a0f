// Command beamterm-demo is a minimal embedder of the beamterm grid
// renderer: it builds a font atlas at startup, opens a window, renders
// a terminal-sized grid of cells, and wires mouse interaction into the
// cell-granularity selection engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/engine"
	"github.com/bloeys/nmage/input"
	"github.com/bloeys/nmage/renderer/rend3dgl"
	"github.com/bloeys/nmage/timing"
	nmageimgui "github.com/bloeys/nmage/ui/imgui"
	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/font"

	"github.com/bloeys/beamterm/atlas"
	"github.com/bloeys/beamterm/glterm"
	"github.com/bloeys/beamterm/glyph"
	"github.com/bloeys/beamterm/ring"
	"github.com/bloeys/beamterm/selection"
)

const sampleRow = "beamterm demo -- drag to select, release to copy"

var (
	fontPath = flag.String("font", "./res/fonts/CascadiaMono-Regular.ttf", "path to the ttf font file the atlas is built from")
	fontSize = flag.Float64("font-size", 18, "font point size at atlas build time")
	winW     = flag.Int("width", 1280, "initial window width in pixels")
	winH     = flag.Int("height", 720, "initial window height in pixels")

	underlinePos    = flag.Float64("underline-pos", 0.85, "underline center as a fraction of cell height")
	underlineThick  = flag.Float64("underline-thickness", 0.06, "underline thickness as a fraction of cell height")
	strikePos       = flag.Float64("strikethrough-pos", 0.5, "strikethrough center as a fraction of cell height")
	strikeThick     = flag.Float64("strikethrough-thickness", 0.06, "strikethrough thickness as a fraction of cell height")
	linearSelection = flag.Bool("linear-selection", false, "use linear (reading-order) selection instead of block")
	keepTrailingWS  = flag.Bool("keep-trailing-whitespace", false, "keep trailing whitespace in copied text")
)

// Settings holds the demo's color configuration as gglm vectors --
// 0..1 float components converted to the packed 0xRRGGBB the grid's
// cell buffers store.
type Settings struct {
	DefaultFgColor gglm.Vec4
	DefaultBgColor gglm.Vec4
}

func packColor(c gglm.Vec4) uint32 {
	r := uint32(c.X() * 255)
	g := uint32(c.Y() * 255)
	b := uint32(c.Z() * 255)
	return r<<16 | g<<8 | b
}

var _ engine.Game = &demo{}

type demo struct {
	win       *engine.Window
	rend      *rend3dgl.Rend3DGL
	imguiInfo nmageimgui.ImguiInfo

	log      *logrus.Logger
	grid     *glterm.TerminalGrid
	glState  glterm.State
	Settings Settings

	frameTimes *ring.Buffer[time.Duration]
	frameStart time.Time

	mouseDown bool
}

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := engine.Init(); err != nil {
		log.WithError(err).Fatal("failed to init engine")
	}

	rend := rend3dgl.NewRend3DGL()
	win, err := engine.CreateOpenGLWindowCentered("beamterm-demo", int32(*winW), int32(*winH), engine.WindowFlags_ALLOW_HIGHDPI|engine.WindowFlags_RESIZABLE, rend)
	if err != nil {
		log.WithError(err).Fatal("failed to create window")
	}
	engine.SetVSync(false)

	d := &demo{
		win:        win,
		rend:       rend,
		imguiInfo:  nmageimgui.NewImGUI(),
		log:        log,
		frameTimes: ring.NewBuffer[time.Duration](120),
		Settings: Settings{
			DefaultFgColor: *gglm.NewVec4(1, 1, 1, 1),
			DefaultBgColor: *gglm.NewVec4(0, 0, 0, 0),
		},
	}
	d.win.EventCallbacks = append(d.win.EventCallbacks, d.handleSDLEvent)

	engine.Run(d, d.win, d.imguiInfo)
}

func (d *demo) Init() {
	faces, err := loadFaceSet(*fontPath, *fontSize)
	if err != nil {
		d.log.WithError(err).Fatal("failed to load font faces")
	}

	data, err := atlas.Build(faces, sampleText(), glyph.DefaultIsEmoji, *fontPath, float32(*fontSize),
		atlas.LineDecoration{Position: float32(*underlinePos), Thickness: float32(*underlineThick)},
		atlas.LineDecoration{Position: float32(*strikePos), Thickness: float32(*strikeThick)},
		d.log,
	)
	if err != nil {
		d.log.WithError(err).Fatal("failed to build font atlas")
	}

	fontAtlas, err := glterm.NewFontAtlas(data)
	if err != nil {
		d.log.WithError(err).Fatal("failed to index font atlas")
	}

	program, err := compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		d.log.WithError(err).Fatal("failed to compile terminal shader")
	}

	w, h := d.win.SDLWin.GetSize()
	grid, err := glterm.NewTerminalGrid(program, fontAtlas, int32(w), int32(h))
	if err != nil {
		d.log.WithError(err).Fatal("failed to create terminal grid")
	}
	d.grid = grid

	if *linearSelection {
		grid.Selection().SetMode(selection.ModeLinear)
	}
	grid.Selection().SetTrimTrailingWhitespace(!*keepTrailingWS)

	d.fillSampleText()
}

// sampleText enumerates every grapheme the demo's atlas must contain.
// A real embedder classifies its actual expected character set instead.
func sampleText() string {
	return sampleRow + " 0123456789 !@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
}

func loadFaceSet(path string, size float64) (atlas.FaceSet, error) {
	var faces atlas.FaceSet

	raw, err := os.ReadFile(path)
	if err != nil {
		return faces, fmt.Errorf("reading font file: %w", err)
	}

	ttf, err := truetype.Parse(raw)
	if err != nil {
		return faces, fmt.Errorf("parsing font file: %w", err)
	}

	opts := &truetype.Options{Size: size, Hinting: font.HintingFull}
	normal := truetype.NewFace(ttf, opts)

	for _, s := range glyph.AllStyles {
		faces[s] = normal
	}

	return faces, nil
}

func (d *demo) fillSampleText() {
	cols, _ := d.grid.Dimensions()

	updates := make([]glterm.PositionedCellUpdate, 0, len(sampleRow))
	for i, r := range sampleRow {
		if int32(i) >= cols {
			break
		}
		updates = append(updates, glterm.PositionedCellUpdate{
			X: int32(i),
			Y: 1,
			Data: glterm.NewCellData(string(r), glyph.StyleNormal, glyph.Decorations{},
				packColor(d.Settings.DefaultFgColor), packColor(d.Settings.DefaultBgColor)),
		})
	}

	d.grid.UpdateCellsByPosition(updates)
}

func (d *demo) handleSDLEvent(e sdl.Event) {
	switch ev := e.(type) {
	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED && d.grid != nil {
			w, h := d.win.SDLWin.GetSize()
			d.grid.Resize(int32(w), int32(h))
		}
	case *sdl.MouseButtonEvent:
		if ev.Button != sdl.BUTTON_LEFT || d.grid == nil {
			return
		}
		cell := d.cellAt(ev.X, ev.Y)
		switch ev.State {
		case sdl.PRESSED:
			d.mouseDown = true
			d.grid.Selection().Down(cell)
		case sdl.RELEASED:
			d.mouseDown = false
			if _, _, ok := d.grid.Selection().Up(cell); ok {
				if q, has := d.grid.Selection().Query(); has {
					selection.CopyToClipboard(d.log, d.grid.GetText(q))
				}
			}
		}
	case *sdl.MouseMotionEvent:
		if d.mouseDown && d.grid != nil {
			d.grid.Selection().Move(d.cellAt(ev.X, ev.Y))
		}
	}
}

// cellAt converts a pixel coordinate to a grid cell. This division is
// the minimal pixel-to-cell translation the demo needs to drive
// Tracker.Down/Move/Up -- the library itself never converts raw pixel
// coordinates.
func (d *demo) cellAt(px, py int32) selection.Cell {
	cw, ch := d.grid.CellSize()
	return selection.Cell{Col: uint16(px / cw), Row: uint16(py / ch)}
}

func (d *demo) Update() {
	if input.IsQuitClicked() || input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
		return
	}

	d.grid.Flush()
	d.frameStart = time.Now()
}

func (d *demo) Render() {
	// The engine's own UI pass binds GL objects behind our back every
	// frame, so the bind cache starts each frame cold.
	d.glState.Invalidate()

	d.grid.Prepare(&d.glState)
	d.grid.Draw()
	d.grid.Cleanup(&d.glState)
}

func (d *demo) FrameEnd() {
	d.frameTimes.Append(time.Since(d.frameStart))

	avgFrame := ring.Mean(d.frameTimes)
	d.win.SDLWin.SetTitle(fmt.Sprintf("beamterm-demo -- frame: %.2fms (FPS: %d)",
		float64(avgFrame.Microseconds())/1000, int(timing.GetAvgFPS())))
}

func (d *demo) DeInit() {
	d.grid.Delete()
}
