package service

import "errors"

var (
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnsupportedPhoto     = errors.New("unsupported photo type")
	ErrPhotoTooLarge        = errors.New("photo too large")
)
