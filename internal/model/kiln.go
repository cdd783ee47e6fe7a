package model

// Kiln is a physical firing device. The same firing sequence run in
// different kilns can give different physical results, so sequences are
// always defined against a specific kiln.
type Kiln struct {
	// ID is assigned by the store and immutable once assigned.
	ID int64

	// Name is intended to be unique across all kilns.
	Name string

	// Description is free text.
	Description string
}

// NewKiln builds a kiln value. The id is normally the one assigned by the
// store; callers constructing a kiln ahead of insertion pass zero.
func NewKiln(id int64, name, description string) Kiln {
	return Kiln{ID: id, Name: name, Description: description}
}
