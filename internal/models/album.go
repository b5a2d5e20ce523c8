package models

import "time"

// Collection is a named sticker album
type Collection struct {
	ID          int64
	Name        string
	Size        int
	Description string
	CreatedAt   time.Time
}

// Card is a single sticker slot inside a collection
type Card struct {
	ID           int64
	CollectionID int64
	Number       int
	Collected    bool
	Duplicates   int
}

// CollectionStats summarizes how far along a collection is
type CollectionStats struct {
	Total      int
	Collected  int
	Missing    int
	Duplicates int
}

// Progress returns the collected share in [0, 1]
func (s CollectionStats) Progress() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Collected) / float64(s.Total)
}

// CardFilter decides which cards of the selected collection are visible
type CardFilter struct {
	ShowCollected bool
	ShowMissing   bool
}

// DefaultCardFilter shows collected and missing cards
func DefaultCardFilter() CardFilter {
	return CardFilter{ShowCollected: true, ShowMissing: true}
}

// Match reports whether the card passes the filter
func (f CardFilter) Match(card Card) bool {
	if card.Collected {
		return f.ShowCollected
	}
	return f.ShowMissing
}

// Apply returns the matching cards in their original order
func (f CardFilter) Apply(cards []Card) []Card {
	visible := make([]Card, 0, len(cards))
	for _, card := range cards {
		if f.Match(card) {
			visible = append(visible, card)
		}
	}
	return visible
}
