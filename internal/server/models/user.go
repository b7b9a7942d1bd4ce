// Package models defines server-side data models persisted in the database.
package models

import (
	"slices"
	"time"
)

// User is an account with its content preferences and its two ledgers.
type User struct {
	ID                int64     `json:"id"`
	UserName          string    `json:"username"`
	PasswordHash      []byte    `json:"-"`
	ContentType       string    `json:"content_type"`
	TargetAudience    string    `json:"target_audience"`
	AdditionalContext string    `json:"additional_context"`
	CreatedAt         time.Time `json:"created_at"`

	// Generations lists every generation id created by the user, oldest first.
	Generations []int64 `json:"generations"`
	// FavoriteGenerations is the subset of Generations the user saved, in the
	// order they were saved.
	FavoriteGenerations []int64 `json:"favorite_generations"`
}

// Owns reports whether genID is in the user's generation ledger.
func (u *User) Owns(genID int64) bool {
	return slices.Contains(u.Generations, genID)
}

// HasFavorite reports whether genID is in the user's favorites ledger.
func (u *User) HasFavorite(genID int64) bool {
	return slices.Contains(u.FavoriteGenerations, genID)
}
