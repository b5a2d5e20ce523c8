package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CardAdder adds a sticker to the selected collection
type CardAdder struct {
	container  *fyne.Container
	entry      *widget.Entry
	addButton  *widget.Button
	addHandler func(label string)
}

// NewCardAdder creates the card number entry and its button
func NewCardAdder() *CardAdder {
	a := &CardAdder{}

	a.entry = widget.NewEntry()
	a.entry.SetPlaceHolder("Enter card number or leave blank")
	a.addButton = widget.NewButtonWithIcon("Add card", theme.ContentAddIcon(), nil)

	submit := func() {
		if a.addHandler != nil {
			a.addHandler(a.entry.Text)
		}
	}
	a.addButton.OnTapped = submit
	a.entry.OnSubmitted = func(string) { submit() }

	a.container = container.NewBorder(nil, nil, nil, a.addButton, a.entry)
	return a
}

func (a *CardAdder) SetAddHandler(handler func(label string)) {
	a.addHandler = handler
}

func (a *CardAdder) Clear() {
	a.entry.SetText("")
}

func (a *CardAdder) GetContainer() *fyne.Container {
	return a.container
}
