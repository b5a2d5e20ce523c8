package components

import (
	"sticker-manager/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// FilterBar shows the selected collection's name, the collected filters and the delete button
type FilterBar struct {
	container     *fyne.Container
	title         *widget.Label
	collectedChk  *widget.Check
	missingChk    *widget.Check
	deleteButton  *widget.Button
	filterHandler func(models.CardFilter)
	deleteHandler func()
	updating      bool
}

// NewFilterBar creates the heading with filter checks and the delete button
func NewFilterBar() *FilterBar {
	bar := &FilterBar{}
	bar.createComponents()
	bar.buildLayout()
	bar.setupEventHandlers()
	return bar
}

func (f *FilterBar) createComponents() {
	f.title = widget.NewLabelWithStyle("Cards", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	f.collectedChk = widget.NewCheck("Collected", nil)
	f.missingChk = widget.NewCheck("Not collected", nil)
	f.collectedChk.SetChecked(true)
	f.missingChk.SetChecked(true)

	f.deleteButton = widget.NewButtonWithIcon("Delete collection", theme.DeleteIcon(), nil)
	f.deleteButton.Importance = widget.DangerImportance
}

func (f *FilterBar) buildLayout() {
	filters := container.NewHBox(widget.NewLabel("Filter cards:"), f.collectedChk, f.missingChk)
	f.container = container.NewVBox(
		f.title,
		container.NewBorder(nil, nil, filters, f.deleteButton),
	)
}

func (f *FilterBar) setupEventHandlers() {
	changed := func(bool) {
		if f.updating || f.filterHandler == nil {
			return
		}
		f.filterHandler(f.Filter())
	}
	f.collectedChk.OnChanged = changed
	f.missingChk.OnChanged = changed

	f.deleteButton.OnTapped = func() {
		if f.deleteHandler != nil {
			f.deleteHandler()
		}
	}
}

func (f *FilterBar) SetFilterHandler(handler func(models.CardFilter)) {
	f.filterHandler = handler
}

func (f *FilterBar) SetDeleteHandler(handler func()) {
	f.deleteHandler = handler
}

func (f *FilterBar) SetTitle(name string) {
	f.title.SetText(name + ":")
}

func (f *FilterBar) Title() string {
	return f.title.Text
}

func (f *FilterBar) Filter() models.CardFilter {
	return models.CardFilter{
		ShowCollected: f.collectedChk.Checked,
		ShowMissing:   f.missingChk.Checked,
	}
}

// SetFilter updates the checks without notifying the handler
func (f *FilterBar) SetFilter(filter models.CardFilter) {
	f.updating = true
	defer func() { f.updating = false }()
	f.collectedChk.SetChecked(filter.ShowCollected)
	f.missingChk.SetChecked(filter.ShowMissing)
}

func (f *FilterBar) GetContainer() *fyne.Container {
	return f.container
}
