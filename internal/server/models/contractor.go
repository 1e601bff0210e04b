// Package models defines the server-side data models persisted in the database.
package models

import "time"

// Contractor is a registered worker. Contractors are never deleted, only
// deactivated, so historical time entries keep a valid owner.
type Contractor struct {
	ID     string
	Name   string
	Email  string
	Active bool

	// Optional profile fields, stored as-is.
	Phone    string
	TeamID   string
	TeamName string
	TimeZone string
	AppAndOS string

	CreatedAt time.Time
}
