package components

import (
	"sticker-manager/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CollectionPanel holds the collection adder and the list of collections
type CollectionPanel struct {
	container        *fyne.Container
	nameEntry        *widget.Entry
	sizeEntry        *widget.Entry
	descriptionEntry *widget.Entry
	addButton        *widget.Button
	list             *widget.List

	collections []models.Collection
	selectedID  int64
	updating    bool

	addHandler    func(name, size, description string)
	selectHandler func(id int64)
}

// NewCollectionPanel creates the collection adder and list
func NewCollectionPanel() *CollectionPanel {
	panel := &CollectionPanel{}
	panel.createComponents()
	panel.buildLayout()
	panel.setupEventHandlers()
	return panel
}

func (p *CollectionPanel) createComponents() {
	p.nameEntry = widget.NewEntry()
	p.nameEntry.SetPlaceHolder("Collection name")

	p.sizeEntry = widget.NewEntry()
	p.sizeEntry.SetPlaceHolder("Number of stickers")

	p.descriptionEntry = widget.NewEntry()
	p.descriptionEntry.SetPlaceHolder("Description (optional)")

	p.addButton = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), nil)
	p.addButton.Importance = widget.HighImportance

	p.list = widget.NewList(
		func() int { return len(p.collections) },
		func() fyne.CanvasObject { return widget.NewLabel("collection") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(p.collections) {
				return
			}
			obj.(*widget.Label).SetText(p.collections[id].Name)
		},
	)
}

func (p *CollectionPanel) buildLayout() {
	adder := container.NewVBox(
		widget.NewLabelWithStyle("Add a new collection:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		p.nameEntry,
		container.NewBorder(nil, nil, nil, p.addButton, p.sizeEntry),
		p.descriptionEntry,
		widget.NewSeparator(),
		widget.NewLabel("Collections:"),
	)

	p.container = container.NewBorder(adder, nil, nil, nil, p.list)
}

func (p *CollectionPanel) setupEventHandlers() {
	submit := func() {
		if p.addHandler != nil {
			p.addHandler(p.nameEntry.Text, p.sizeEntry.Text, p.descriptionEntry.Text)
		}
	}
	p.addButton.OnTapped = submit
	p.sizeEntry.OnSubmitted = func(string) { submit() }

	p.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(p.collections) {
			return
		}
		p.selectedID = p.collections[id].ID
		if !p.updating && p.selectHandler != nil {
			p.selectHandler(p.collections[id].ID)
		}
	}
}

// SetAddHandler is called with the raw form values when Add is tapped
func (p *CollectionPanel) SetAddHandler(handler func(name, size, description string)) {
	p.addHandler = handler
}

// SetSelectHandler is called with the collection ID when a row is selected
func (p *CollectionPanel) SetSelectHandler(handler func(id int64)) {
	p.selectHandler = handler
}

// SetCollections replaces the listed collections, keeping the selected row if it is still listed
func (p *CollectionPanel) SetCollections(collections []models.Collection) {
	p.collections = append([]models.Collection(nil), collections...)
	p.list.Refresh()

	p.updating = true
	defer func() { p.updating = false }()

	for i, collection := range p.collections {
		if collection.ID == p.selectedID {
			p.list.Select(i)
			return
		}
	}
	p.selectedID = 0
	p.list.UnselectAll()
}

// Selected returns the ID of the highlighted collection
func (p *CollectionPanel) Selected() (int64, bool) {
	return p.selectedID, p.selectedID != 0
}

// Count returns the number of listed collections
func (p *CollectionPanel) Count() int {
	return len(p.collections)
}

// ClearForm empties the adder inputs after a successful add
func (p *CollectionPanel) ClearForm() {
	p.nameEntry.SetText("")
	p.sizeEntry.SetText("")
	p.descriptionEntry.SetText("")
}

// GetContainer returns the panel's root container
func (p *CollectionPanel) GetContainer() *fyne.Container {
	return p.container
}
