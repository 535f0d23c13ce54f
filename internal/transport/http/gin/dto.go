package httpgin

import (
	"time"

	"github.com/olekhv/aero-go/internal/domain"
)

// Row and Seat carry no binding rules on purpose: zero and negative
// coordinates must reach seat-map validation so the client gets the
// field-keyed range message instead of a generic binding error.
type TicketInput struct {
	FlightID int64 `json:"flight" binding:"required"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketInput `json:"tickets" binding:"required,min=1,dive"`
}

type TicketResponse struct {
	ID       string `json:"id"`
	FlightID int64  `json:"flight"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

func toOrderResponse(o *domain.OrderWithTickets) OrderResponse {
	resp := OrderResponse{
		ID:        o.Order.ID.String(),
		CreatedAt: o.Order.CreatedAt,
		Tickets:   make([]TicketResponse, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, TicketResponse{
			ID:       t.ID.String(),
			FlightID: t.FlightID,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}
	return resp
}

type FlightLegResponse struct {
	ID            int64     `json:"id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// TicketListResponse is the listing shape of a ticket: the flight comes
// expanded as a leg instead of a bare id.
type TicketListResponse struct {
	ID     string            `json:"id"`
	Flight FlightLegResponse `json:"flight"`
	Row    int               `json:"row"`
	Seat   int               `json:"seat"`
}

type OrderSummaryResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Tickets   []TicketListResponse `json:"tickets"`
}

func toOrderSummaryResponse(o *domain.OrderSummary) OrderSummaryResponse {
	resp := OrderSummaryResponse{
		ID:        o.ID.String(),
		CreatedAt: o.CreatedAt,
		Tickets:   make([]TicketListResponse, 0, len(o.Tickets)),
	}
	for _, t := range o.Tickets {
		resp.Tickets = append(resp.Tickets, TicketListResponse{
			ID: t.ID.String(),
			Flight: FlightLegResponse{
				ID:            t.Flight.ID,
				Source:        t.Flight.Source,
				Destination:   t.Flight.Destination,
				DepartureTime: t.Flight.DepartureTime,
				ArrivalTime:   t.Flight.ArrivalTime,
			},
			Row:  t.Row,
			Seat: t.Seat,
		})
	}
	return resp
}

type FlightSummaryResponse struct {
	ID               int64     `json:"id"`
	Source           string    `json:"source"`
	Destination      string    `json:"destination"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int64     `json:"tickets_available"`
}

type AirplaneInfoResponse struct {
	Name       string `json:"name"`
	Type       string `json:"airplane_type"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

type FlightDetailResponse struct {
	ID              int64                `json:"id"`
	Source          string               `json:"source"`
	SourceCity      string               `json:"source_city"`
	Destination     string               `json:"destination"`
	DestinationCity string               `json:"destination_city"`
	DepartureTime   time.Time            `json:"departure_time"`
	ArrivalTime     time.Time            `json:"arrival_time"`
	Crew            []string             `json:"crew"`
	Airplane        AirplaneInfoResponse `json:"airplane"`
}

func toFlightDetailResponse(f *domain.FlightDetail) FlightDetailResponse {
	return FlightDetailResponse{
		ID:              f.ID,
		Source:          f.Source,
		SourceCity:      f.SourceCity,
		Destination:     f.Destination,
		DestinationCity: f.DestinationCity,
		DepartureTime:   f.DepartureTime,
		ArrivalTime:     f.ArrivalTime,
		Crew:            f.Crew,
		Airplane: AirplaneInfoResponse{
			Name:       f.Airplane.Name,
			Type:       f.Airplane.TypeName,
			Rows:       f.Airplane.Rows,
			SeatsInRow: f.Airplane.SeatsInRow,
			Capacity:   f.Airplane.Capacity,
		},
	}
}

type AvailabilityResponse struct {
	FlightID         int64 `json:"flight_id"`
	TicketsAvailable int64 `json:"tickets_available"`
}

type OccupiedSeatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type CrewRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type CrewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type AirportRequest struct {
	Name           string `json:"name" binding:"required"`
	ClosestBigCity string `json:"closest_big_city"`
}

type AirportResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type AirplaneTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

type AirplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AirplaneRequest struct {
	Name           string `json:"name" binding:"required"`
	Rows           int    `json:"rows" binding:"required,gt=0"`
	SeatsInRow     int    `json:"seats_in_row" binding:"required,gt=0"`
	AirplaneTypeID int64  `json:"airplane_type" binding:"required"`
}

type AirplaneResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	Capacity       int    `json:"capacity"`
	AirplaneTypeID int64  `json:"airplane_type"`
}

type RouteRequest struct {
	SourceID      int64 `json:"source" binding:"required"`
	DestinationID int64 `json:"destination" binding:"required,nefield=SourceID"`
	Distance      int   `json:"distance" binding:"required,gt=0"`
}

type RouteResponse struct {
	ID                 int64  `json:"id"`
	SourceID           int64  `json:"source"`
	DestinationID      int64  `json:"destination"`
	Distance           int    `json:"distance"`
	SourceAirport      string `json:"source_airport,omitempty"`
	SourceCity         string `json:"source_city,omitempty"`
	DestinationAirport string `json:"destination_airport,omitempty"`
	DestinationCity    string `json:"destination_city,omitempty"`
}

func toRouteResponse(rt *domain.RouteDetail) RouteResponse {
	return RouteResponse{
		ID:                 rt.ID,
		SourceID:           rt.SourceID,
		DestinationID:      rt.DestinationID,
		Distance:           rt.Distance,
		SourceAirport:      rt.SourceAirport,
		SourceCity:         rt.SourceCity,
		DestinationAirport: rt.DestinationAirport,
		DestinationCity:    rt.DestinationCity,
	}
}

type FlightRequest struct {
	RouteID       int64   `json:"route" binding:"required"`
	AirplaneID    int64   `json:"airplane" binding:"required"`
	DepartureTime string  `json:"departure_time" binding:"required"`
	ArrivalTime   string  `json:"arrival_time" binding:"required"`
	CrewIDs       []int64 `json:"crews" binding:"omitempty,dive,required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
