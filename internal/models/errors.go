package models

import "errors"

var (
	ErrEmptyCollectionName   = errors.New("collection name must not be empty")
	ErrInvalidCollectionSize = errors.New("collection size is out of range")
	ErrInvalidCardNumber     = errors.New("card number must be a number")
	ErrDuplicateCardNumber   = errors.New("card number already exists in collection")
	ErrNoDuplicates          = errors.New("card has no duplicates to remove")
	ErrCollectionNotFound    = errors.New("collection not found")
	ErrCardNotFound          = errors.New("card not found")
	ErrNoCollectionSelected  = errors.New("no collection selected")
)
