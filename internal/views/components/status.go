package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays collection progress and database information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
	dbInfo      *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.progressBar = widget.NewProgressBar()
	sb.progressBar.Hide()
	sb.dbInfo = widget.NewLabel("Database: --")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil,
		sb.statusLabel,
		sb.dbInfo,
		sb.progressBar,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetProgress shows the bar for values in [0, 1]; a negative value hides it
func (sb *StatusBar) SetProgress(progress float64) {
	if progress < 0 {
		sb.progressBar.Hide()
		return
	}
	if progress > 1 {
		progress = 1
	}
	sb.progressBar.SetValue(progress)
	sb.progressBar.Show()
}

func (sb *StatusBar) GetProgress() float64 {
	return sb.progressBar.Value
}

func (sb *StatusBar) SetDatabaseInfo(info string) {
	sb.dbInfo.SetText(info)
}

// Reset clears the status text and hides the progress bar
func (sb *StatusBar) Reset() {
	sb.statusLabel.SetText("Ready")
	sb.progressBar.SetValue(0)
	sb.progressBar.Hide()
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
