package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// AlbumExport is the YAML document written by Export
type AlbumExport struct {
	ExportedAt  time.Time          `yaml:"exported_at"`
	Collections []CollectionExport `yaml:"collections"`
}

type CollectionExport struct {
	ID          int64        `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Size        int          `yaml:"size"`
	Collected   int          `yaml:"collected"`
	Missing     []int        `yaml:"missing,flow"`
	Cards       []CardExport `yaml:"cards"`
}

type CardExport struct {
	Number     int  `yaml:"number"`
	Collected  bool `yaml:"collected"`
	Duplicates int  `yaml:"duplicates,omitempty"`
}

// BuildExport collects the whole album into an AlbumExport
func (s *AlbumService) BuildExport(ctx context.Context) (AlbumExport, error) {
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return AlbumExport{}, err
	}

	doc := AlbumExport{ExportedAt: time.Now().UTC().Truncate(time.Second)}
	for _, collection := range collections {
		cards, err := s.store.CardsForCollection(ctx, collection.ID)
		if err != nil {
			return AlbumExport{}, fmt.Errorf("export collection %d: %w", collection.ID, err)
		}

		entry := CollectionExport{
			ID:          collection.ID,
			Name:        collection.Name,
			Description: collection.Description,
			Size:        collection.Size,
			Missing:     []int{},
			Cards:       make([]CardExport, 0, len(cards)),
		}
		for _, card := range cards {
			if card.Collected {
				entry.Collected++
			} else {
				entry.Missing = append(entry.Missing, card.Number)
			}
			entry.Cards = append(entry.Cards, CardExport{
				Number:     card.Number,
				Collected:  card.Collected,
				Duplicates: card.Duplicates,
			})
		}
		doc.Collections = append(doc.Collections, entry)
	}
	return doc, nil
}

// Export writes the album as YAML
func (s *AlbumService) Export(ctx context.Context, w io.Writer) error {
	doc, err := s.BuildExport(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode album: %w", err)
	}
	return enc.Close()
}
