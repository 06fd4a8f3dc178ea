// Package display adapts chip8.VM frame-buffer and keypad snapshots to a
// faiface/pixel window. It knows nothing about opcode semantics; it only
// reads the VM's public Observation API and writes back through
// PressKey/ReleaseKey.
package display

import (
	"fmt"
	"strings"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/chippy-vm/chippy/internal/chip8"
)

// Keypad is the polymorphic seam between a VM and whatever is driving its
// keypad state. *chip8.VM satisfies it directly.
type Keypad interface {
	PressKey(key uint8)
	ReleaseKey(key uint8)
}

// Window wraps a pixelgl.Window sized to a multiple of the CHIP-8 64x32
// grid and a hex-keypad -> pixelgl.Button table built from a keymap
// layout.
type Window struct {
	*pixelgl.Window
	keys                     map[pixelgl.Button]uint8
	pixelWidth, pixelHeight  float64
}

// New creates a pixelgl window titled title, sized screenW x screenH, with
// the hex keypad bound to physical keys per layout (see internal/keymap).
func New(title string, screenW, screenH float64, layout map[uint8]string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenW, screenH),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("display: create window: %w", err)
	}
	keys, err := buildKeyTable(layout)
	if err != nil {
		return nil, err
	}
	return &Window{
		Window:      win,
		keys:        keys,
		pixelWidth:  screenW / float64(chip8.DisplayWidth),
		pixelHeight: screenH / float64(chip8.DisplayHeight),
	}, nil
}

var namedButtons = map[string]pixelgl.Button{
	"0": pixelgl.Key0, "1": pixelgl.Key1, "2": pixelgl.Key2, "3": pixelgl.Key3,
	"4": pixelgl.Key4, "5": pixelgl.Key5, "6": pixelgl.Key6, "7": pixelgl.Key7,
	"8": pixelgl.Key8, "9": pixelgl.Key9,
	"A": pixelgl.KeyA, "B": pixelgl.KeyB, "C": pixelgl.KeyC, "D": pixelgl.KeyD,
	"E": pixelgl.KeyE, "F": pixelgl.KeyF, "G": pixelgl.KeyG, "H": pixelgl.KeyH,
	"I": pixelgl.KeyI, "J": pixelgl.KeyJ, "K": pixelgl.KeyK, "L": pixelgl.KeyL,
	"M": pixelgl.KeyM, "N": pixelgl.KeyN, "O": pixelgl.KeyO, "P": pixelgl.KeyP,
	"Q": pixelgl.KeyQ, "R": pixelgl.KeyR, "S": pixelgl.KeyS, "T": pixelgl.KeyT,
	"U": pixelgl.KeyU, "V": pixelgl.KeyV, "W": pixelgl.KeyW, "X": pixelgl.KeyX,
	"Y": pixelgl.KeyY, "Z": pixelgl.KeyZ,
}

func buildKeyTable(layout map[uint8]string) (map[pixelgl.Button]uint8, error) {
	out := make(map[pixelgl.Button]uint8, len(layout))
	for hex, name := range layout {
		btn, ok := namedButtons[strings.ToUpper(name)]
		if !ok {
			return nil, fmt.Errorf("display: unknown key name %q bound to hex digit %X", name, hex)
		}
		out[btn] = hex
	}
	return out, nil
}

// Draw clears the window and blits the frame buffer, one filled rectangle
// per set pixel. pixel's coordinate origin is bottom-left; row 0 of the
// CHIP-8 frame buffer is the top row, so rows are flipped on the way out.
func (w *Window) Draw(fb [chip8.DisplayWidth * chip8.DisplayHeight]byte) {
	w.Clear(colornames.Black)
	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)

	for y := 0; y < chip8.DisplayHeight; y++ {
		flippedY := chip8.DisplayHeight - 1 - y
		for x := 0; x < chip8.DisplayWidth; x++ {
			if fb[y*chip8.DisplayWidth+x] == 0 {
				continue
			}
			originX := w.pixelWidth * float64(x)
			originY := w.pixelHeight * float64(flippedY)
			draw.Push(pixel.V(originX, originY))
			draw.Push(pixel.V(originX+w.pixelWidth, originY+w.pixelHeight))
			draw.Rectangle(0)
		}
	}

	draw.Draw(w)
	w.Update()
}

// PollKeys reads just-pressed/just-released transitions on the bound
// physical keys and forwards them to kp, then refreshes pixelgl's input
// state. Call once per frame.
func (w *Window) PollKeys(kp Keypad) {
	for btn, hex := range w.keys {
		switch {
		case w.JustPressed(btn):
			kp.PressKey(hex)
		case w.JustReleased(btn):
			kp.ReleaseKey(hex)
		}
	}
	w.UpdateInput()
}
