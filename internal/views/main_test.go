package views

import (
	"testing"

	"sticker-manager/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestMainViewShowAndHideCollection(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	view := NewMainView(w)
	assert.Equal(t, view.GetContainer(), w.Content())
	assert.False(t, view.detail.Visible())

	view.ShowCollection(models.Collection{ID: 1, Name: "Euro"}, []models.Card{{Number: 1}, {Number: 2}}, models.DefaultCardFilter())
	assert.True(t, view.detail.Visible())
	assert.False(t, view.placeholder.Visible())
	assert.Equal(t, "Euro:", view.filterBar.Title())
	assert.Equal(t, 2, view.cardGrid.VisibleCount())

	view.HideCollection()
	assert.False(t, view.detail.Visible())
	assert.True(t, view.placeholder.Visible())
	assert.Zero(t, view.cardGrid.VisibleCount())
}

func TestMainViewMinSize(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	view := NewMainView(w)
	view.SetMinSize(fyne.NewSize(900, 500))

	minSize := view.GetContainer().MinSize()
	assert.GreaterOrEqual(t, minSize.Width, float32(900))
	assert.GreaterOrEqual(t, minSize.Height, float32(500))
}
