package components

import (
	"fmt"
	"strconv"

	"sticker-manager/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CardGrid lays out the visible cards of the selected collection
type CardGrid struct {
	grid  *widget.GridWrap
	cards []models.Card

	collectedHandler       func(card models.Card, collected bool)
	addDuplicateHandler    func(card models.Card)
	removeDuplicateHandler func(card models.Card)
}

// NewCardGrid creates a wrapping grid of card cells
func NewCardGrid() *CardGrid {
	g := &CardGrid{}
	g.grid = widget.NewGridWrap(
		func() int { return len(g.cards) },
		func() fyne.CanvasObject { return newCardCell(g) },
		func(id widget.GridWrapItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(g.cards) {
				return
			}
			obj.(*cardCell).bind(g.cards[id])
		},
	)
	return g
}

func (g *CardGrid) SetCollectedHandler(handler func(card models.Card, collected bool)) {
	g.collectedHandler = handler
}

func (g *CardGrid) SetAddDuplicateHandler(handler func(card models.Card)) {
	g.addDuplicateHandler = handler
}

func (g *CardGrid) SetRemoveDuplicateHandler(handler func(card models.Card)) {
	g.removeDuplicateHandler = handler
}

// SetCards replaces the shown cards
func (g *CardGrid) SetCards(cards []models.Card) {
	g.cards = append([]models.Card(nil), cards...)
	g.grid.Refresh()
}

func (g *CardGrid) VisibleCount() int {
	return len(g.cards)
}

func (g *CardGrid) GetObject() fyne.CanvasObject {
	return g.grid
}

// cardCell renders one sticker: its number, a collected check and the duplicates counter
type cardCell struct {
	widget.BaseWidget

	grid       *CardGrid
	card       models.Card
	number     *widget.Label
	check      *widget.Check
	duplicates *widget.Label
	minus      *widget.Button
	plus       *widget.Button
}

func newCardCell(g *CardGrid) *cardCell {
	c := &cardCell{grid: g}
	c.number = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	c.check = widget.NewCheck("", nil)
	c.duplicates = widget.NewLabel("x0")
	c.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		if g.removeDuplicateHandler != nil {
			g.removeDuplicateHandler(c.card)
		}
	})
	c.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if g.addDuplicateHandler != nil {
			g.addDuplicateHandler(c.card)
		}
	})
	c.ExtendBaseWidget(c)
	return c
}

func (c *cardCell) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewVBox(
		c.number,
		container.NewCenter(c.check),
		container.NewHBox(c.minus, c.duplicates, c.plus),
	)
	return widget.NewSimpleRenderer(content)
}

func (c *cardCell) bind(card models.Card) {
	c.card = card
	c.number.SetText(strconv.Itoa(card.Number))

	// Reset the callback so that rebinding a recycled cell does not report a change.
	c.check.OnChanged = nil
	c.check.SetChecked(card.Collected)
	c.check.OnChanged = func(collected bool) {
		if c.grid.collectedHandler != nil {
			c.grid.collectedHandler(c.card, collected)
		}
	}

	c.duplicates.SetText(fmt.Sprintf("x%d", card.Duplicates))
	if card.Duplicates > 0 {
		c.minus.Enable()
	} else {
		c.minus.Disable()
	}
}
