// Package seatmap models the legal seat coordinate space of an airplane
// and the claimed coordinates of a flight. It is the single place where
// row/seat range and double-booking rules live; both the order submission
// path and its tests go through it.
package seatmap

import "fmt"

// Layout is the physical seat grid of an airplane.
type Layout struct {
	Rows       int
	SeatsInRow int
}

func (l Layout) Capacity() int {
	return l.Rows * l.SeatsInRow
}

// Contains reports whether (row, seat) is a physical coordinate of the layout.
// Rows and seats are numbered from 1.
func (l Layout) Contains(row, seat int) bool {
	return row >= 1 && row <= l.Rows && seat >= 1 && seat <= l.SeatsInRow
}

// Place is one (row, seat) coordinate.
type Place struct {
	Row  int
	Seat int
}

// RangeError reports a coordinate outside the airplane layout. Field names
// the offending dimension ("row" or "seat"), Bound the airplane attribute
// that bounds it ("rows" or "seats_in_row").
type RangeError struct {
	Field string
	Bound string
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"%s number must be in available range: (1, %s): (1, %d)",
		e.Field, e.Bound, e.Max,
	)
}

// ConflictError reports a seat already claimed on a flight, either by a
// persisted ticket or by an earlier request in the same batch.
type ConflictError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"seat %d in row %d is already taken on flight %d",
		e.Seat, e.Row, e.FlightID,
	)
}

// Validate checks a single coordinate against the layout.
func Validate(l Layout, row, seat int) error {
	if row < 1 || row > l.Rows {
		return &RangeError{Field: "row", Bound: "rows", Max: l.Rows}
	}

	if seat < 1 || seat > l.SeatsInRow {
		return &RangeError{Field: "seat", Bound: "seats_in_row", Max: l.SeatsInRow}
	}

	return nil
}

// Map tracks the layout and claimed places of one flight. Claims made
// through it accumulate, so duplicates within a batch collide the same
// way persisted tickets do.
type Map struct {
	flightID int64
	layout   Layout
	taken    map[Place]struct{}
}

// New builds a map for flightID with the given layout and the places
// already occupied by persisted tickets.
func New(flightID int64, layout Layout, occupied []Place) *Map {
	taken := make(map[Place]struct{}, len(occupied))
	for _, p := range occupied {
		taken[p] = struct{}{}
	}

	return &Map{
		flightID: flightID,
		layout:   layout,
		taken:    taken,
	}
}

func (m *Map) FlightID() int64 {
	return m.flightID
}

func (m *Map) Layout() Layout {
	return m.layout
}

// Claim validates (row, seat) against the layout and the taken set, and
// marks it taken on success.
func (m *Map) Claim(row, seat int) error {
	if err := Validate(m.layout, row, seat); err != nil {
		return err
	}

	p := Place{Row: row, Seat: seat}
	if _, ok := m.taken[p]; ok {
		return &ConflictError{FlightID: m.flightID, Row: row, Seat: seat}
	}

	m.taken[p] = struct{}{}

	return nil
}
