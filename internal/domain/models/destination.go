package models

// Picture is one photo attached to a destination.
type Picture struct {
	Src         string
	Description string
}

// Destination is a place a point can happen at. The catalog is loaded once
// per session and treated as immutable afterwards.
type Destination struct {
	ID          string
	Name        string
	Description string
	Pictures    []Picture
}
