package views

import (
	"image/color"

	"sticker-manager/internal/models"
	"sticker-manager/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainView is the sticker album window: collections on the left, cards on the right
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	rightStack    *fyne.Container
	placeholder   fyne.CanvasObject
	detail        *fyne.Container
	sizer         *canvas.Rectangle

	collectionPanel *components.CollectionPanel
	filterBar       *components.FilterBar
	cardGrid        *components.CardGrid
	cardAdder       *components.CardAdder
	statusBar       *components.StatusBar
}

// NewMainView creates the view and installs it as the window content
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{window: window}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.collectionPanel = components.NewCollectionPanel()
	mv.filterBar = components.NewFilterBar()
	mv.cardGrid = components.NewCardGrid()
	mv.cardAdder = components.NewCardAdder()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.placeholder = container.NewCenter(widget.NewLabel("Select a collection to see its stickers"))

	mv.detail = container.NewBorder(
		container.NewVBox(mv.filterBar.GetContainer(), widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), mv.cardAdder.GetContainer()),
		nil,
		nil,
		mv.cardGrid.GetObject(),
	)
	mv.detail.Hide()

	mv.rightStack = container.NewStack(mv.placeholder, mv.detail)

	split := container.NewHSplit(mv.collectionPanel.GetContainer(), mv.rightStack)
	split.SetOffset(0.22)

	heading := widget.NewLabelWithStyle("My stickers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	content := container.NewBorder(
		container.NewVBox(heading, widget.NewSeparator()),
		container.NewVBox(widget.NewSeparator(), mv.statusBar.GetContainer()),
		nil,
		nil,
		split,
	)

	// The transparent sizer carries the window's minimum size.
	mv.sizer = canvas.NewRectangle(color.Transparent)
	mv.mainContainer = container.NewStack(mv.sizer, content)

	mv.window.SetContent(mv.mainContainer)
}

// Event handler setters - called by controller

func (mv *MainView) SetAddCollectionHandler(handler func(name, size, description string)) {
	mv.collectionPanel.SetAddHandler(handler)
}

func (mv *MainView) SetSelectCollectionHandler(handler func(id int64)) {
	mv.collectionPanel.SetSelectHandler(handler)
}

func (mv *MainView) SetDeleteCollectionHandler(handler func()) {
	mv.filterBar.SetDeleteHandler(handler)
}

func (mv *MainView) SetFilterHandler(handler func(models.CardFilter)) {
	mv.filterBar.SetFilterHandler(handler)
}

func (mv *MainView) SetCollectedHandler(handler func(card models.Card, collected bool)) {
	mv.cardGrid.SetCollectedHandler(handler)
}

func (mv *MainView) SetAddDuplicateHandler(handler func(card models.Card)) {
	mv.cardGrid.SetAddDuplicateHandler(handler)
}

func (mv *MainView) SetRemoveDuplicateHandler(handler func(card models.Card)) {
	mv.cardGrid.SetRemoveDuplicateHandler(handler)
}

func (mv *MainView) SetAddCardHandler(handler func(label string)) {
	mv.cardAdder.SetAddHandler(handler)
}

// UI update methods - called by controller on the UI goroutine

func (mv *MainView) SetCollections(collections []models.Collection) {
	mv.collectionPanel.SetCollections(collections)
}

func (mv *MainView) ClearCollectionForm() {
	mv.collectionPanel.ClearForm()
}

// ShowCollection switches the right pane to the given collection
func (mv *MainView) ShowCollection(collection models.Collection, cards []models.Card, filter models.CardFilter) {
	mv.filterBar.SetTitle(collection.Name)
	mv.filterBar.SetFilter(filter)
	mv.cardGrid.SetCards(cards)
	mv.cardAdder.Clear()
	mv.placeholder.Hide()
	mv.detail.Show()
	mv.rightStack.Refresh()
}

// HideCollection returns the right pane to its placeholder
func (mv *MainView) HideCollection() {
	mv.cardGrid.SetCards(nil)
	mv.detail.Hide()
	mv.placeholder.Show()
	mv.statusBar.Reset()
	mv.rightStack.Refresh()
}

func (mv *MainView) SetCards(cards []models.Card) {
	mv.cardGrid.SetCards(cards)
}

func (mv *MainView) ClearCardForm() {
	mv.cardAdder.Clear()
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

func (mv *MainView) SetProgress(progress float64) {
	mv.statusBar.SetProgress(progress)
}

func (mv *MainView) SetDatabaseInfo(info string) {
	mv.statusBar.SetDatabaseInfo(info)
}

func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	dialog.ShowConfirm(title, message, callback, mv.window)
}

// SetMinSize keeps the window from shrinking below size
func (mv *MainView) SetMinSize(size fyne.Size) {
	mv.sizer.SetMinSize(size)
	mv.mainContainer.Refresh()
}

func (mv *MainView) Show() {
	mv.window.Show()
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}
