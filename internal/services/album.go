package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sticker-manager/internal/events"
	"sticker-manager/internal/logger"
	"sticker-manager/internal/models"
)

const component = "AlbumService"

// AlbumStore is the persistence the album service needs
type AlbumStore interface {
	AddCollection(ctx context.Context, name string, size int, description string) (models.Collection, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id int64) (models.Collection, error)
	CardsForCollection(ctx context.Context, collectionID int64) ([]models.Card, error)
	CardByNumber(ctx context.Context, collectionID int64, number int) (models.Card, error)
	SetCardCollected(ctx context.Context, cardID int64, collected bool) error
	SetCardDuplicates(ctx context.Context, cardID int64, duplicates int) error
	MaxCardNumber(ctx context.Context, collectionID int64) (int, error)
	AddCard(ctx context.Context, collectionID int64, number int) (models.Card, error)
	DeleteCollection(ctx context.Context, id int64) error
	CollectionStats(ctx context.Context, id int64) (models.CollectionStats, error)
}

// AlbumService applies the album rules on top of the store
type AlbumService struct {
	store             AlbumStore
	publisher         events.Publisher
	logger            logger.Logger
	maxCollectionSize int
}

// NewAlbumService creates the service; a maxCollectionSize of 0 means no limit
func NewAlbumService(store AlbumStore, publisher events.Publisher, log logger.Logger, maxCollectionSize int) *AlbumService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &AlbumService{
		store:             store,
		publisher:         publisher,
		logger:            log,
		maxCollectionSize: maxCollectionSize,
	}
}

// Collections returns all collections ordered by ID
func (s *AlbumService) Collections(ctx context.Context) ([]models.Collection, error) {
	return s.store.ListCollections(ctx)
}

// OpenCollection loads a collection together with its cards
func (s *AlbumService) OpenCollection(ctx context.Context, id int64) (models.Collection, []models.Card, error) {
	collection, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return models.Collection{}, nil, err
	}
	cards, err := s.store.CardsForCollection(ctx, id)
	if err != nil {
		return models.Collection{}, nil, fmt.Errorf("load cards of collection %d: %w", id, err)
	}
	return collection, cards, nil
}

// CreateCollection validates the input and creates a collection with cards 1..size
func (s *AlbumService) CreateCollection(ctx context.Context, name string, size int, description string) (models.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Collection{}, models.ErrEmptyCollectionName
	}
	if size < 0 {
		return models.Collection{}, fmt.Errorf("%w: %d", models.ErrInvalidCollectionSize, size)
	}
	if s.maxCollectionSize > 0 && size > s.maxCollectionSize {
		return models.Collection{}, fmt.Errorf("%w: %d (max %d)", models.ErrInvalidCollectionSize, size, s.maxCollectionSize)
	}

	collection, err := s.store.AddCollection(ctx, name, size, strings.TrimSpace(description))
	if err != nil {
		s.logger.Error(component, err, map[string]interface{}{"name": name, "size": size})
		return models.Collection{}, err
	}

	s.logger.Info(component, "collection created", map[string]interface{}{
		"collection_id": collection.ID,
		"name":          collection.Name,
		"size":          collection.Size,
	})
	s.publish(events.CollectionAdded, map[string]interface{}{"collection_id": collection.ID})
	return collection, nil
}

// ParseCardLabel turns user input into a card number; blank means "next free number"
func ParseCardLabel(label string) (number int, next bool, err error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, true, nil
	}
	n, err := strconv.ParseUint(label, 10, 31)
	if err != nil || n == 0 {
		return 0, false, models.ErrInvalidCardNumber
	}
	return int(n), false, nil
}

// AddCard adds a card to the collection, numbering it after the current maximum when label is blank
func (s *AlbumService) AddCard(ctx context.Context, collectionID int64, label string) (models.Card, error) {
	number, next, err := ParseCardLabel(label)
	if err != nil {
		return models.Card{}, err
	}
	if next {
		highest, err := s.store.MaxCardNumber(ctx, collectionID)
		if err != nil {
			return models.Card{}, err
		}
		number = highest + 1
	}

	card, err := s.store.AddCard(ctx, collectionID, number)
	if err != nil {
		return models.Card{}, err
	}

	s.logger.Info(component, "card added", map[string]interface{}{
		"collection_id": collectionID,
		"card_number":   card.Number,
	})
	s.publish(events.CardAdded, map[string]interface{}{
		"collection_id": collectionID,
		"card_id":       card.ID,
	})
	return card, nil
}

// SetCollected marks the card collected or missing and returns the updated copy
func (s *AlbumService) SetCollected(ctx context.Context, card models.Card, collected bool) (models.Card, error) {
	if err := s.store.SetCardCollected(ctx, card.ID, collected); err != nil {
		return card, err
	}
	card.Collected = collected
	s.cardUpdated(card)
	return card, nil
}

// AddDuplicate increments the duplicate count
func (s *AlbumService) AddDuplicate(ctx context.Context, card models.Card) (models.Card, error) {
	return s.setDuplicates(ctx, card, card.Duplicates+1)
}

// RemoveDuplicate decrements the duplicate count; it never goes below zero
func (s *AlbumService) RemoveDuplicate(ctx context.Context, card models.Card) (models.Card, error) {
	if card.Duplicates <= 0 {
		return card, models.ErrNoDuplicates
	}
	return s.setDuplicates(ctx, card, card.Duplicates-1)
}

func (s *AlbumService) setDuplicates(ctx context.Context, card models.Card, duplicates int) (models.Card, error) {
	if err := s.store.SetCardDuplicates(ctx, card.ID, duplicates); err != nil {
		return card, err
	}
	card.Duplicates = duplicates
	s.cardUpdated(card)
	return card, nil
}

// CardByNumber resolves a card from its collection and printed number
func (s *AlbumService) CardByNumber(ctx context.Context, collectionID int64, number int) (models.Card, error) {
	return s.store.CardByNumber(ctx, collectionID, number)
}

// DeleteCollection removes a collection together with its cards
func (s *AlbumService) DeleteCollection(ctx context.Context, id int64) error {
	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	s.logger.Info(component, "collection deleted", map[string]interface{}{"collection_id": id})
	s.publish(events.CollectionDeleted, map[string]interface{}{"collection_id": id})
	return nil
}

// Stats returns the collected, missing and duplicate totals
func (s *AlbumService) Stats(ctx context.Context, id int64) (models.CollectionStats, error) {
	return s.store.CollectionStats(ctx, id)
}

func (s *AlbumService) cardUpdated(card models.Card) {
	s.logger.Debug(component, "card updated", map[string]interface{}{
		"card_id":    card.ID,
		"collected":  card.Collected,
		"duplicates": card.Duplicates,
	})
	s.publish(events.CardUpdated, map[string]interface{}{
		"collection_id": card.CollectionID,
		"card_id":       card.ID,
	})
}

func (s *AlbumService) publish(eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{Type: eventType, Data: data})
}
