package models

import "sync"

// AlbumState holds what the window currently shows
type AlbumState struct {
	mu          sync.RWMutex
	collections []Collection
	selected    *Collection
	cards       []Card
	filter      CardFilter
}

// NewAlbumState creates an empty state showing every card
func NewAlbumState() *AlbumState {
	return &AlbumState{filter: DefaultCardFilter()}
}

// SetCollections replaces the known collections
func (s *AlbumState) SetCollections(collections []Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = append([]Collection(nil), collections...)
}

// Collections returns a copy of the known collections
func (s *AlbumState) Collections() []Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Collection(nil), s.collections...)
}

// AddCollection appends a newly created collection
func (s *AlbumState) AddCollection(collection Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = append(s.collections, collection)
}

// RemoveCollection drops the collection and clears the selection if it pointed at it
func (s *AlbumState) RemoveCollection(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.collections[:0]
	for _, c := range s.collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.collections = kept

	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
		s.cards = nil
	}
}

// UpdateCollection replaces the stored copy with the same ID
func (s *AlbumState) UpdateCollection(collection Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID == collection.ID {
			s.collections[i] = collection
		}
	}
	if s.selected != nil && s.selected.ID == collection.ID {
		selected := collection
		s.selected = &selected
	}
}

// Select makes collection current with the given cards
func (s *AlbumState) Select(collection Collection, cards []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &collection
	s.cards = append([]Card(nil), cards...)
}

// ClearSelection drops the current collection and its cards
func (s *AlbumState) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.cards = nil
}

// Selected returns the current collection, if any
func (s *AlbumState) Selected() (Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return Collection{}, false
	}
	return *s.selected, true
}

// Cards returns all cards of the current collection
func (s *AlbumState) Cards() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Card(nil), s.cards...)
}

// VisibleCards returns the cards that pass the filter
func (s *AlbumState) VisibleCards() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Apply(s.cards)
}

// UpsertCard replaces a card with the same ID or appends it, keeping cards ordered by number
func (s *AlbumState) UpsertCard(card Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil || s.selected.ID != card.CollectionID {
		return
	}

	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i] = card
			return
		}
	}

	pos := len(s.cards)
	for i := range s.cards {
		if s.cards[i].Number > card.Number {
			pos = i
			break
		}
	}
	s.cards = append(s.cards, Card{})
	copy(s.cards[pos+1:], s.cards[pos:])
	s.cards[pos] = card
}

// SetFilter sets the card filter
func (s *AlbumState) SetFilter(filter CardFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// Filter returns the card filter
func (s *AlbumState) Filter() CardFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SelectedStats computes stats from the cards held in memory
func (s *AlbumState) SelectedStats() CollectionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats CollectionStats
	for _, card := range s.cards {
		stats.Total++
		if card.Collected {
			stats.Collected++
		}
		stats.Duplicates += card.Duplicates
	}
	stats.Missing = stats.Total - stats.Collected
	return stats
}
