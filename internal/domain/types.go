package domain

import (
	"time"

	"github.com/google/uuid"
)

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
}

type AirplaneType struct {
	ID   int64
	Name string
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
}

// Capacity is the total number of sellable seats.
func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int
}

type RouteDetail struct {
	Route
	SourceAirport      string
	SourceCity         string
	DestinationAirport string
	DestinationCity    string
}

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	CrewIDs       []int64
}

// FlightSummary is the flight-listing projection, including the
// tickets_available counter computed at read time.
type FlightSummary struct {
	ID               int64
	Source           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	TicketsAvailable int64
}

type FlightDetail struct {
	ID              int64
	Source          string
	SourceCity      string
	Destination     string
	DestinationCity string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	Crew            []string
	Airplane        AirplaneInfo
}

type AirplaneInfo struct {
	Name       string
	TypeName   string
	Rows       int
	SeatsInRow int
	Capacity   int
}

type Order struct {
	ID        uuid.UUID
	UserID    int64
	CreatedAt time.Time
}

type Ticket struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	FlightID int64
	Row      int
	Seat     int
}

// TicketRequest is one seat claim inside an order submission.
type TicketRequest struct {
	FlightID int64
	Row      int
	Seat     int
}

type OrderWithTickets struct {
	Order   Order
	Tickets []Ticket
}

// FlightLeg is the compact flight projection embedded next to each
// ticket in order listings.
type FlightLeg struct {
	ID            int64
	Source        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

type TicketWithFlight struct {
	Ticket
	Flight FlightLeg
}

// OrderSummary is the order-listing projection, tickets embedded with
// their flight legs.
type OrderSummary struct {
	Order
	Tickets []TicketWithFlight
}

// FlightFilter narrows flight listings. String fields match by
// case-insensitive substring; DepartureDate matches the calendar date.
type FlightFilter struct {
	SourceAirport      string
	SourceCity         string
	DestinationAirport string
	DestinationCity    string
	DepartureDate      *time.Time
	Limit              int
	Offset             int
}
