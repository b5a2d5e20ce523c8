// Package storage persists collections and cards in a local SQLite file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sticker-manager/internal/logger"
	"sticker-manager/internal/models"
	"sticker-manager/internal/storage/migrations"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const component = "Store"

// Store is the album database handle
type Store struct {
	db     *sql.DB
	path   string
	logger logger.Logger
}

// Open opens (or creates) the database at path and applies embedded migrations.
func Open(ctx context.Context, path string, log logger.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer for the life of the process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	log.Info(component, "database opened", map[string]interface{}{"path": cleanPath})
	return &Store{db: db, path: cleanPath, logger: log}, nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.path
}

// Shutdown closes the database; it satisfies shutdown.Shutdownable
func (s *Store) Shutdown() {
	if err := s.Close(); err != nil {
		s.logger.Error(component, err, nil)
	}
}

// Close closes the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddCollection inserts a collection and its cards 1..size in one transaction.
func (s *Store) AddCollection(ctx context.Context, name string, size int, description string) (models.Collection, error) {
	if size < 0 {
		return models.Collection{}, models.ErrInvalidCollectionSize
	}
	createdAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Collection{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO collections (name, size, description, created_at) VALUES (?, ?, ?, ?)`,
		name, size, description, createdAt.UnixMilli(),
	)
	if err != nil {
		return models.Collection{}, fmt.Errorf("insert collection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Collection{}, fmt.Errorf("collection id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (collection_id, card_number, collected, duplicates) VALUES (?, ?, 0, 0)`)
	if err != nil {
		return models.Collection{}, fmt.Errorf("prepare card insert: %w", err)
	}
	defer stmt.Close()

	for number := 1; number <= size; number++ {
		if _, err := stmt.ExecContext(ctx, id, number); err != nil {
			return models.Collection{}, fmt.Errorf("insert card %d: %w", number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Collection{}, fmt.Errorf("commit collection: %w", err)
	}

	s.logger.Debug(component, "collection inserted", map[string]interface{}{
		"collection_id": id,
		"cards":         size,
	})

	return models.Collection{
		ID:          id,
		Name:        name,
		Size:        size,
		Description: description,
		CreatedAt:   time.UnixMilli(createdAt.UnixMilli()).UTC(),
	}, nil
}

// ListCollections returns all collections ordered by ID
func (s *Store) ListCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, size, description, created_at FROM collections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, nil
}

// GetCollection returns the collection or ErrCollectionNotFound
func (s *Store) GetCollection(ctx context.Context, id int64) (models.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, size, description, created_at FROM collections WHERE id = ?`, id)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Collection{}, models.ErrCollectionNotFound
	}
	return c, err
}

// CollectionName returns the name of the collection
func (s *Store) CollectionName(ctx context.Context, id int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM collections WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrCollectionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query collection name: %w", err)
	}
	return name, nil
}

// CardsForCollection returns the cards ordered by card number
func (s *Store) CardsForCollection(ctx context.Context, collectionID int64) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, collection_id, card_number, collected, duplicates
		   FROM cards WHERE collection_id = ? ORDER BY card_number`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// GetCard returns the card or ErrCardNotFound
func (s *Store) GetCard(ctx context.Context, cardID int64) (models.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, collection_id, card_number, collected, duplicates FROM cards WHERE id = ?`, cardID)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, models.ErrCardNotFound
	}
	return card, err
}

// CardByNumber looks a card up by its printed number
func (s *Store) CardByNumber(ctx context.Context, collectionID int64, number int) (models.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, collection_id, card_number, collected, duplicates
		   FROM cards WHERE collection_id = ? AND card_number = ?`, collectionID, number)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, models.ErrCardNotFound
	}
	return card, err
}

// SetCardCollected updates the collected flag of a card
func (s *Store) SetCardCollected(ctx context.Context, cardID int64, collected bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE cards SET collected = ? WHERE id = ?`, collected, cardID)
	if err != nil {
		return fmt.Errorf("update card collected: %w", err)
	}
	return expectOneRow(res, models.ErrCardNotFound)
}

// SetCardDuplicates stores the duplicate count; negative counts are rejected
func (s *Store) SetCardDuplicates(ctx context.Context, cardID int64, duplicates int) error {
	if duplicates < 0 {
		return models.ErrNoDuplicates
	}
	res, err := s.db.ExecContext(ctx, `UPDATE cards SET duplicates = ? WHERE id = ?`, duplicates, cardID)
	if err != nil {
		return fmt.Errorf("update card duplicates: %w", err)
	}
	return expectOneRow(res, models.ErrCardNotFound)
}

// MaxCardNumber returns 0 when the collection has no cards
func (s *Store) MaxCardNumber(ctx context.Context, collectionID int64) (int, error) {
	var highest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(card_number) FROM cards WHERE collection_id = ?`, collectionID).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("query max card number: %w", err)
	}
	return int(highest.Int64), nil
}

// AddCard inserts one card and grows the collection size.
func (s *Store) AddCard(ctx context.Context, collectionID int64, number int) (models.Card, error) {
	if number <= 0 {
		return models.Card{}, models.ErrInvalidCardNumber
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Card{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM collections WHERE id = ?`, collectionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, models.ErrCollectionNotFound
	}
	if err != nil {
		return models.Card{}, fmt.Errorf("check collection: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO cards (collection_id, card_number, collected, duplicates) VALUES (?, ?, 0, 0)`,
		collectionID, number)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Card{}, models.ErrDuplicateCardNumber
		}
		return models.Card{}, fmt.Errorf("insert card: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Card{}, fmt.Errorf("card id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE collections SET size = (SELECT COUNT(*) FROM cards WHERE collection_id = ?) WHERE id = ?`,
		collectionID, collectionID); err != nil {
		return models.Card{}, fmt.Errorf("update collection size: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Card{}, fmt.Errorf("commit card: %w", err)
	}
	return models.Card{ID: id, CollectionID: collectionID, Number: number}, nil
}

// DeleteCollection removes the collection; its cards go with it
func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return expectOneRow(res, models.ErrCollectionNotFound)
}

// CollectionStats sums the card states of a collection in SQL
func (s *Store) CollectionStats(ctx context.Context, id int64) (models.CollectionStats, error) {
	var stats models.CollectionStats
	var collected, duplicates sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(CASE WHEN collected THEN 1 ELSE 0 END), SUM(duplicates)
		   FROM cards WHERE collection_id = ?`, id).Scan(&stats.Total, &collected, &duplicates)
	if err != nil {
		return models.CollectionStats{}, fmt.Errorf("query collection stats: %w", err)
	}
	stats.Collected = int(collected.Int64)
	stats.Duplicates = int(duplicates.Int64)
	stats.Missing = stats.Total - stats.Collected
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCollection(row rowScanner) (models.Collection, error) {
	var c models.Collection
	var createdAt int64
	if err := row.Scan(&c.ID, &c.Name, &c.Size, &c.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Collection{}, err
		}
		return models.Collection{}, fmt.Errorf("scan collection: %w", err)
	}
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	return c, nil
}

func scanCard(row rowScanner) (models.Card, error) {
	var card models.Card
	if err := row.Scan(&card.ID, &card.CollectionID, &card.Number, &card.Collected, &card.Duplicates); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Card{}, err
		}
		return models.Card{}, fmt.Errorf("scan card: %w", err)
	}
	return card, nil
}

func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
