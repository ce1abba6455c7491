package about

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Version is stamped at build time.
var Version = "dev"

const projectURL = "https://github.com/serverfailure71/CaffeineTake"

// Show opens the about window.
func Show(app fyne.App) {
	window := app.NewWindow("About CaffeineTake")

	link, _ := url.Parse(projectURL)
	content := container.NewVBox(
		widget.NewLabelWithStyle("CaffeineTake", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Keep your computer awake.", fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle("Version "+Version, fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewHyperlink(projectURL, link),
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(320, 160))
	window.Show()
}
