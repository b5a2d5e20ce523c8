package controllers

import (
	"context"
	"path/filepath"
	"testing"

	"sticker-manager/internal/models"
	"sticker-manager/internal/services"
	"sticker-manager/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	addCollection    func(name, size, description string)
	selectCollection func(id int64)
	deleteCollection func()
	filter           func(models.CardFilter)
	collected        func(card models.Card, collected bool)
	addDuplicate     func(card models.Card)
	removeDuplicate  func(card models.Card)
	addCard          func(label string)

	collections   []models.Collection
	shown         *models.Collection
	cards         []models.Card
	status        string
	progress      float64
	dbInfo        string
	errors        []error
	confirmAnswer bool
	confirms      int
	formCleared   int
	cardCleared   int
}

func (f *fakeView) SetAddCollectionHandler(h func(name, size, description string)) {
	f.addCollection = h
}
func (f *fakeView) SetSelectCollectionHandler(h func(id int64))                  { f.selectCollection = h }
func (f *fakeView) SetDeleteCollectionHandler(h func())                          { f.deleteCollection = h }
func (f *fakeView) SetFilterHandler(h func(models.CardFilter))                   { f.filter = h }
func (f *fakeView) SetCollectedHandler(h func(card models.Card, collected bool)) { f.collected = h }
func (f *fakeView) SetAddDuplicateHandler(h func(card models.Card))              { f.addDuplicate = h }
func (f *fakeView) SetRemoveDuplicateHandler(h func(card models.Card))           { f.removeDuplicate = h }
func (f *fakeView) SetAddCardHandler(h func(label string))                       { f.addCard = h }

func (f *fakeView) SetCollections(c []models.Collection) { f.collections = c }
func (f *fakeView) ClearCollectionForm()                 { f.formCleared++ }
func (f *fakeView) ShowCollection(c models.Collection, cards []models.Card, _ models.CardFilter) {
	f.shown = &c
	f.cards = cards
}
func (f *fakeView) HideCollection()              { f.shown = nil; f.cards = nil }
func (f *fakeView) SetCards(cards []models.Card) { f.cards = cards }
func (f *fakeView) ClearCardForm()               { f.cardCleared++ }
func (f *fakeView) UpdateStatus(status string)   { f.status = status }
func (f *fakeView) SetProgress(progress float64) { f.progress = progress }
func (f *fakeView) SetDatabaseInfo(info string)  { f.dbInfo = info }
func (f *fakeView) ShowError(err error)          { f.errors = append(f.errors, err) }
func (f *fakeView) ShowConfirm(_, _ string, cb func(bool)) {
	f.confirms++
	cb(f.confirmAnswer)
}

func newController(t *testing.T) (*MainController, *fakeView, *services.AlbumService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "stick.db")
	store, err := storage.Open(context.Background(), dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := services.NewAlbumService(store, nil, nil, 500)
	mc := NewMainController(svc, models.NewAlbumState(), nil, dbPath)
	view := &fakeView{}
	mc.SetMainView(view)
	return mc, view, svc
}

func TestStartLoadsCollections(t *testing.T) {
	mc, view, svc := newController(t)
	_, err := svc.CreateCollection(context.Background(), "Existing", 2, "")
	require.NoError(t, err)

	require.NoError(t, mc.Start())
	require.Len(t, view.collections, 1)
	assert.Equal(t, "Existing", view.collections[0].Name)
	assert.Contains(t, view.dbInfo, "Database:")
}

func TestAddCollectionFromForm(t *testing.T) {
	_, view, _ := newController(t)

	view.addCollection("Bundesliga", "abc", "")
	require.Len(t, view.errors, 1)
	assert.ErrorIs(t, view.errors[0], models.ErrInvalidCollectionSize)

	view.addCollection("   ", "3", "")
	assert.ErrorIs(t, view.errors[1], models.ErrEmptyCollectionName)

	view.addCollection("Bundesliga", " 18 ", "")
	assert.Len(t, view.errors, 2)
	require.Len(t, view.collections, 1)
	assert.Equal(t, 18, view.collections[0].Size)
	assert.Equal(t, 1, view.formCleared)

	view.addCollection("Blank size", "", "")
	require.Len(t, view.collections, 2)
	assert.Zero(t, view.collections[1].Size)
}

func TestSelectToggleAndFilter(t *testing.T) {
	_, view, _ := newController(t)
	view.addCollection("Serie A", "4", "")
	id := view.collections[0].ID

	view.selectCollection(id)
	require.NotNil(t, view.shown)
	assert.Equal(t, "Serie A", view.shown.Name)
	require.Len(t, view.cards, 4)

	view.collected(view.cards[1], true)
	assert.Equal(t, "Serie A: collected 1 of 4, 3 missing, 0 duplicates", view.status)
	assert.InDelta(t, 0.25, view.progress, 1e-9)

	view.filter(models.CardFilter{ShowMissing: true})
	assert.Len(t, view.cards, 3)

	view.filter(models.CardFilter{ShowCollected: true})
	require.Len(t, view.cards, 1)
	assert.Equal(t, 2, view.cards[0].Number)

	view.selectCollection(9999)
	assert.ErrorIs(t, view.errors[len(view.errors)-1], models.ErrCollectionNotFound)
}

func TestDuplicates(t *testing.T) {
	_, view, _ := newController(t)
	view.addCollection("La Liga", "1", "")
	view.selectCollection(view.collections[0].ID)

	view.removeDuplicate(view.cards[0])
	require.Len(t, view.errors, 1)
	assert.ErrorIs(t, view.errors[0], models.ErrNoDuplicates)

	view.addDuplicate(view.cards[0])
	view.addDuplicate(view.cards[0])
	assert.Equal(t, 2, view.cards[0].Duplicates)

	view.removeDuplicate(view.cards[0])
	assert.Equal(t, 1, view.cards[0].Duplicates)
	assert.Contains(t, view.status, "1 duplicates")
}

func TestAddCard(t *testing.T) {
	mc, view, _ := newController(t)

	view.addCard("3")
	assert.ErrorIs(t, view.errors[0], models.ErrNoCollectionSelected)

	view.addCollection("Ligue 1", "2", "")
	view.selectCollection(view.collections[0].ID)

	view.addCard("x")
	assert.ErrorIs(t, view.errors[1], models.ErrInvalidCardNumber)

	view.addCard("")
	view.addCard("10")
	require.Len(t, view.cards, 4)
	assert.Equal(t, []int{1, 2, 3, 10}, []int{view.cards[0].Number, view.cards[1].Number, view.cards[2].Number, view.cards[3].Number})
	assert.Equal(t, 2, view.cardCleared)

	selected, ok := mc.state.Selected()
	require.True(t, ok)
	assert.Equal(t, 4, selected.Size)
}

func TestDeleteSelectedCollectionNeedsConfirmation(t *testing.T) {
	_, view, svc := newController(t)

	view.deleteCollection()
	assert.ErrorIs(t, view.errors[0], models.ErrNoCollectionSelected)

	view.addCollection("Premier League", "5", "")
	view.selectCollection(view.collections[0].ID)

	view.confirmAnswer = false
	view.deleteCollection()
	assert.Equal(t, 1, view.confirms)
	assert.Len(t, view.collections, 1)
	assert.NotNil(t, view.shown)

	view.confirmAnswer = true
	view.deleteCollection()
	assert.Empty(t, view.collections)
	assert.Nil(t, view.shown)

	collections, err := svc.Collections(context.Background())
	require.NoError(t, err)
	assert.Empty(t, collections)
}
