// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. The `json:"..."` tags decide
// the API field names.
package model

import "time"

// Snippet is a saved playground program.
//
// UserID is the owner's opaque id from the auth backend. Language is stored
// as its editor tag so web snippets can be saved even though only the
// simulated languages can be run.
type Snippet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Language    string    `json:"language"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
