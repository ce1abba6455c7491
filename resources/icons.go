// Package resources renders the tray icon variants at runtime, one per
// (mode, execution state) pair, so no binary assets ship with the app.
package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

const iconSize = 32

var (
	disabledColor = color.NRGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	enabledColor  = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	autoColor     = color.NRGBA{R: 0x42, G: 0xa5, B: 0xf5, A: 0xff}
	timerColor    = color.NRGBA{R: 0xff, G: 0xa7, B: 0x26, A: 0xff}
)

var iconCache sync.Map

// TrayIcon returns the icon for the given mode and execution state.
func TrayIcon(mode model.Mode, state model.ExecutionState) fyne.Resource {
	key := fmt.Sprintf("tray-%s-%s", mode, state)
	if cached, ok := iconCache.Load(key); ok {
		return cached.(fyne.Resource)
	}

	tint := colorFor(mode)
	dimmed := state == model.StateInactive && mode != model.ModeEnabled
	if mode == model.ModeDisabled {
		dimmed = true
	}
	steam := state == model.StateActive

	resource := fyne.NewStaticResource(key+".png", renderCup(tint, dimmed, steam))
	iconCache.Store(key, resource)
	return resource
}

// AppIcon returns the application icon.
func AppIcon() fyne.Resource {
	key := "app"
	if cached, ok := iconCache.Load(key); ok {
		return cached.(fyne.Resource)
	}
	resource := fyne.NewStaticResource("caffeinetake.png", renderCup(enabledColor, false, true))
	iconCache.Store(key, resource)
	return resource
}

func colorFor(mode model.Mode) color.NRGBA {
	switch mode {
	case model.ModeEnabled:
		return enabledColor
	case model.ModeAuto:
		return autoColor
	case model.ModeTimer:
		return timerColor
	default:
		return disabledColor
	}
}

// renderCup draws a coffee cup glyph: body, handle, saucer, and steam
// wisps when the assertion is active.
func renderCup(tint color.NRGBA, dimmed bool, steam bool) []byte {
	if dimmed {
		tint.A = 0x78
	}

	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))

	// Cup body.
	fillRect(img, 6, 14, 20, 26, tint)
	// Handle.
	fillRect(img, 21, 16, 26, 18, tint)
	fillRect(img, 24, 16, 26, 23, tint)
	fillRect(img, 21, 21, 26, 23, tint)
	// Saucer.
	fillRect(img, 4, 27, 23, 29, tint)

	if steam {
		fillRect(img, 9, 4, 11, 11, tint)
		fillRect(img, 13, 2, 15, 11, tint)
		fillRect(img, 17, 4, 19, 11, tint)
	}

	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		// Encoding an in-memory NRGBA image cannot fail at runtime.
		panic(err)
	}
	return buffer.Bytes()
}

func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, fill color.NRGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
}
