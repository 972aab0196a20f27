package types

import (
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// AddIngredientRequest adds one pantry entry. Blank names are accepted and
// ignored.
type AddIngredientRequest struct {
	Name string `json:"name"`
}

// AssignMealRequest places a recipe in a meal slot. Zero servings means the
// recipe's own servings.
type AssignMealRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	Servings int       `json:"servings" binding:"min=0,max=50"`
}

// SaveJournalRequest rates a recipe into the journal
type SaveJournalRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	Rating   int       `json:"rating" binding:"required"`
	Notes    string    `json:"notes" binding:"max=2000"`
}

// UpdateJournalRequest changes rating and/or notes of an entry
type UpdateJournalRequest struct {
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes" binding:"omitempty,max=2000"`
}
