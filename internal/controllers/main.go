package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sticker-manager/internal/logger"
	"sticker-manager/internal/models"
	"sticker-manager/internal/services"

	"github.com/dustin/go-humanize"
)

const component = "MainController"

// AlbumView is the part of the window the controller drives
type AlbumView interface {
	SetAddCollectionHandler(handler func(name, size, description string))
	SetSelectCollectionHandler(handler func(id int64))
	SetDeleteCollectionHandler(handler func())
	SetFilterHandler(handler func(models.CardFilter))
	SetCollectedHandler(handler func(card models.Card, collected bool))
	SetAddDuplicateHandler(handler func(card models.Card))
	SetRemoveDuplicateHandler(handler func(card models.Card))
	SetAddCardHandler(handler func(label string))

	SetCollections(collections []models.Collection)
	ClearCollectionForm()
	ShowCollection(collection models.Collection, cards []models.Card, filter models.CardFilter)
	HideCollection()
	SetCards(cards []models.Card)
	ClearCardForm()
	UpdateStatus(status string)
	SetProgress(progress float64)
	SetDatabaseInfo(info string)
	ShowError(err error)
	ShowConfirm(title, message string, callback func(bool))
}

// MainController connects view events to the album service and keeps AlbumState current.
// All methods run on the UI goroutine.
type MainController struct {
	service *services.AlbumService
	state   *models.AlbumState
	view    AlbumView
	logger  logger.Logger
	dbPath  string
	timeout time.Duration
}

// NewMainController creates a controller; the view is attached with SetMainView
func NewMainController(service *services.AlbumService, state *models.AlbumState, log logger.Logger, dbPath string) *MainController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &MainController{
		service: service,
		state:   state,
		logger:  log,
		dbPath:  dbPath,
		timeout: 5 * time.Second,
	}
}

// SetMainView associates the view and connects its callbacks
func (mc *MainController) SetMainView(view AlbumView) {
	mc.view = view

	view.SetAddCollectionHandler(mc.AddCollection)
	view.SetSelectCollectionHandler(mc.SelectCollection)
	view.SetDeleteCollectionHandler(mc.DeleteSelectedCollection)
	view.SetFilterHandler(mc.ChangeFilter)
	view.SetCollectedHandler(mc.SetCollected)
	view.SetAddDuplicateHandler(mc.AddDuplicate)
	view.SetRemoveDuplicateHandler(mc.RemoveDuplicate)
	view.SetAddCardHandler(mc.AddCard)
}

// Start loads the collections into the view
func (mc *MainController) Start() error {
	ctx, cancel := mc.context()
	defer cancel()

	collections, err := mc.service.Collections(ctx)
	if err != nil {
		return fmt.Errorf("load collections: %w", err)
	}
	mc.state.SetCollections(collections)
	mc.view.SetCollections(collections)
	mc.RefreshDatabaseInfo()

	mc.logger.Info(component, "collections loaded", map[string]interface{}{"count": len(collections)})
	return nil
}

// SelectCollection loads the collection and shows its cards
func (mc *MainController) SelectCollection(id int64) {
	ctx, cancel := mc.context()
	defer cancel()

	collection, cards, err := mc.service.OpenCollection(ctx, id)
	if err != nil {
		mc.handleError("select collection", err)
		return
	}

	mc.state.Select(collection, cards)
	mc.view.ShowCollection(collection, mc.state.VisibleCards(), mc.state.Filter())
	mc.refreshStatus()
}

// AddCollection parses the adder form and creates the collection
func (mc *MainController) AddCollection(name, size, description string) {
	count := 0
	if trimmed := strings.TrimSpace(size); trimmed != "" {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			mc.handleError("add collection", fmt.Errorf("%w: %q", models.ErrInvalidCollectionSize, trimmed))
			return
		}
		count = n
	}

	ctx, cancel := mc.context()
	defer cancel()

	collection, err := mc.service.CreateCollection(ctx, name, count, description)
	if err != nil {
		mc.handleError("add collection", err)
		return
	}

	mc.state.AddCollection(collection)
	mc.view.SetCollections(mc.state.Collections())
	mc.view.ClearCollectionForm()
	mc.view.UpdateStatus(fmt.Sprintf("Added %q with %d stickers", collection.Name, collection.Size))
	mc.RefreshDatabaseInfo()
}

// DeleteSelectedCollection asks for confirmation and deletes the selected collection
func (mc *MainController) DeleteSelectedCollection() {
	collection, ok := mc.state.Selected()
	if !ok {
		mc.handleError("delete collection", models.ErrNoCollectionSelected)
		return
	}

	mc.view.ShowConfirm(
		"Delete collection",
		fmt.Sprintf("Delete %q and all of its stickers?", collection.Name),
		func(confirmed bool) {
			if confirmed {
				mc.deleteCollection(collection)
			}
		},
	)
}

func (mc *MainController) deleteCollection(collection models.Collection) {
	ctx, cancel := mc.context()
	defer cancel()

	if err := mc.service.DeleteCollection(ctx, collection.ID); err != nil {
		mc.handleError("delete collection", err)
		return
	}

	mc.state.RemoveCollection(collection.ID)
	mc.view.SetCollections(mc.state.Collections())
	mc.view.HideCollection()
	mc.view.UpdateStatus(fmt.Sprintf("Deleted %q", collection.Name))
	mc.RefreshDatabaseInfo()
}

// ChangeFilter applies the collected/missing filter to the card grid
func (mc *MainController) ChangeFilter(filter models.CardFilter) {
	mc.state.SetFilter(filter)
	mc.view.SetCards(mc.state.VisibleCards())
}

// SetCollected marks a card collected or missing
func (mc *MainController) SetCollected(card models.Card, collected bool) {
	mc.updateCard("set collected", func(ctx context.Context) (models.Card, error) {
		return mc.service.SetCollected(ctx, card, collected)
	})
}

// AddDuplicate counts one more duplicate of a card
func (mc *MainController) AddDuplicate(card models.Card) {
	mc.updateCard("add duplicate", func(ctx context.Context) (models.Card, error) {
		return mc.service.AddDuplicate(ctx, card)
	})
}

// RemoveDuplicate counts one duplicate less
func (mc *MainController) RemoveDuplicate(card models.Card) {
	mc.updateCard("remove duplicate", func(ctx context.Context) (models.Card, error) {
		return mc.service.RemoveDuplicate(ctx, card)
	})
}

// AddCard adds a card to the selected collection
func (mc *MainController) AddCard(label string) {
	collection, ok := mc.state.Selected()
	if !ok {
		mc.handleError("add card", models.ErrNoCollectionSelected)
		return
	}

	_, ok = mc.updateCard("add card", func(ctx context.Context) (models.Card, error) {
		return mc.service.AddCard(ctx, collection.ID, label)
	})
	if ok {
		collection.Size++
		mc.state.UpdateCollection(collection)
		mc.view.ClearCardForm()
	}
}

func (mc *MainController) updateCard(action string, apply func(ctx context.Context) (models.Card, error)) (models.Card, bool) {
	ctx, cancel := mc.context()
	defer cancel()

	card, err := apply(ctx)
	if err != nil {
		// The grid may show an optimistic state; redraw from what is stored.
		mc.view.SetCards(mc.state.VisibleCards())
		mc.handleError(action, err)
		return card, false
	}

	mc.state.UpsertCard(card)
	mc.view.SetCards(mc.state.VisibleCards())
	mc.refreshStatus()
	return card, true
}

func (mc *MainController) refreshStatus() {
	collection, ok := mc.state.Selected()
	if !ok {
		return
	}
	stats := mc.state.SelectedStats()
	mc.view.UpdateStatus(fmt.Sprintf("%s: collected %d of %d, %d missing, %d duplicates",
		collection.Name, stats.Collected, stats.Total, stats.Missing, stats.Duplicates))
	mc.view.SetProgress(stats.Progress())
}

// RefreshDatabaseInfo shows the database file size in the status bar
func (mc *MainController) RefreshDatabaseInfo() {
	if mc.dbPath == "" {
		return
	}
	info, err := os.Stat(mc.dbPath)
	if err != nil {
		mc.logger.Debug(component, "stat database failed", map[string]interface{}{"error": err.Error()})
		return
	}
	mc.view.SetDatabaseInfo(fmt.Sprintf("Database: %s", humanize.Bytes(uint64(info.Size()))))
}

func (mc *MainController) handleError(action string, err error) {
	if isUserError(err) {
		mc.logger.Warning(component, "rejected input", map[string]interface{}{
			"action": action,
			"reason": err.Error(),
		})
	} else {
		mc.logger.Error(component, err, map[string]interface{}{"action": action})
	}
	mc.view.ShowError(err)
}

func (mc *MainController) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), mc.timeout)
}

// Shutdown is called by the shutdown manager before the store closes
func (mc *MainController) Shutdown() {
	mc.logger.Info(component, "controller stopped", nil)
}

func isUserError(err error) bool {
	for _, target := range []error{
		models.ErrEmptyCollectionName,
		models.ErrInvalidCollectionSize,
		models.ErrInvalidCardNumber,
		models.ErrDuplicateCardNumber,
		models.ErrNoDuplicates,
		models.ErrNoCollectionSelected,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
