package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/olekhv/aero-go/internal/domain"
	redisrepo "github.com/olekhv/aero-go/internal/repository/redis"
	"github.com/olekhv/aero-go/internal/seatmap"
	"github.com/olekhv/aero-go/internal/service"
	"github.com/olekhv/aero-go/internal/service/catalog"
	"github.com/olekhv/aero-go/internal/service/flights"
	"github.com/olekhv/aero-go/internal/service/orders"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		LoggingMiddleware(logger),
		RequestIDMiddleware(),
		CORS(),
		IdentityMiddleware(),
	)
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/flights", handleListFlights(svcs))
	r.GET("/flights/:id", handleGetFlight(svcs))
	r.GET("/flights/:id/availability", handleGetAvailability(svcs))
	r.GET("/flights/:id/seats", handleListOccupiedSeats(svcs))

	r.POST("/orders", handleCreateOrder(svcs, idem))
	r.GET("/orders", handleListOrders(svcs))
	r.GET("/orders/:id", handleGetOrder(svcs))

	// Admin-API
	// TODO: add admin authorization middleware
	registerAdminRoutes(r.Group("/admin"), svcs)

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List flights
// @Param    source_airport       query  string  false "substring match"
// @Param    source_city          query  string  false "substring match"
// @Param    destination_airport  query  string  false "substring match"
// @Param    destination_city     query  string  false "substring match"
// @Param    departure_time       query  string  false "date, YYYY-MM-DD"
// @Param    limit                query  int     false "page size"
// @Param    offset               query  int     false "offset"
// @Success  200  {array}  FlightSummaryResponse
// @Router   /flights [get]
func handleListFlights(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.FlightFilter{
			SourceAirport:      c.Query("source_airport"),
			SourceCity:         c.Query("source_city"),
			DestinationAirport: c.Query("destination_airport"),
			DestinationCity:    c.Query("destination_city"),
			Limit:              parseIntDefault(c.Query("limit"), 0),
			Offset:             parseIntDefault(c.Query("offset"), 0),
		}
		if raw := c.Query("departure_time"); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				badRequest(c, "invalid departure_time (YYYY-MM-DD)")
				return
			}
			filter.DepartureDate = &d
		}

		list, err := svcs.Flights.List(c.Request.Context(), filter)
		if err != nil {
			respondErr(c, err)
			return
		}

		resp := make([]FlightSummaryResponse, 0, len(list))
		for _, f := range list {
			resp = append(resp, FlightSummaryResponse{
				ID:               f.ID,
				Source:           f.Source,
				Destination:      f.Destination,
				DepartureTime:    f.DepartureTime,
				ArrivalTime:      f.ArrivalTime,
				TicketsAvailable: f.TicketsAvailable,
			})
		}
		respondCacheable(c, resp, 15*time.Second)
	}
}

// @Summary  Get flight
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  FlightDetailResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /flights/{id} [get]
func handleGetFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, err := svcs.Flights.Get(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondCacheable(c, toFlightDetailResponse(f), time.Minute)
	}
}

// @Summary  Get seats left on a flight
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {object}  AvailabilityResponse
// @Router   /flights/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		left, err := svcs.Flights.Availability(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		respondCacheable(c, AvailabilityResponse{
			FlightID:         flightID,
			TicketsAvailable: left,
		}, 15*time.Second)
	}
}

// @Summary  List taken seats on a flight
// @Param    id  path  int  true  "Flight ID"
// @Success  200  {array}  OccupiedSeatResponse
// @Router   /flights/{id}/seats [get]
func handleListOccupiedSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		flightID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		places, err := svcs.Flights.OccupiedSeats(c.Request.Context(), flightID)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]OccupiedSeatResponse, 0, len(places))
		for _, p := range places {
			resp = append(resp, OccupiedSeatResponse{Row: p.Row, Seat: p.Seat})
		}
		respondCacheable(c, resp, 15*time.Second)
	}
}

// @Summary  Create order (idempotent)
// @Param    req body  CreateOrderRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} OrderResponse
// @Failure  400 {object} map[string]string "validation error keyed by field"
// @Failure  409 {object} ErrorResponse "seat taken / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /orders [post]
func handleCreateOrder(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemOrder(userID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		reqs := make([]domain.TicketRequest, 0, len(req.Tickets))
		for _, t := range req.Tickets {
			reqs = append(reqs, domain.TicketRequest{
				FlightID: t.FlightID,
				Row:      t.Row,
				Seat:     t.Seat,
			})
		}
		rlKey := "user:" + strconv.FormatInt(userID, 10)

		order, err := svcs.Orders.Submit(c.Request.Context(), userID, reqs, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := toOrderResponse(order)

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  List own orders
// @Param    limit  query  int  false "page size"
// @Param    offset query  int  false "offset"
// @Success  200 {array} OrderSummaryResponse
// @Router   /orders [get]
func handleListOrders(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		limit := parseIntDefault(c.Query("limit"), 0)
		offset := parseIntDefault(c.Query("offset"), 0)

		list, err := svcs.Orders.List(c.Request.Context(), userID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]OrderSummaryResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toOrderSummaryResponse(&list[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get own order with tickets
// @Param    id  path  string  true  "Order ID (uuid)"
// @Success  200 {object} OrderResponse
// @Failure  404 {object} ErrorResponse
// @Router   /orders/{id} [get]
func handleGetOrder(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			return
		}
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid order id")
			return
		}
		o, err := svcs.Orders.Get(c.Request.Context(), userID, orderID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(o))
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	// seat validation errors keep their field-keyed shape so clients can
	// attach them to the offending input
	var rangeErr *seatmap.RangeError
	if errors.As(err, &rangeErr) {
		c.JSON(http.StatusBadRequest, gin.H{rangeErr.Field: rangeErr.Error()})
		return
	}
	var conflictErr *seatmap.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: conflictErr.Error()})
		return
	}

	switch {
	// orders service
	case errors.Is(err, orders.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"tickets": "order must contain at least one ticket"})
		return
	case errors.Is(err, orders.ErrFlightNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"flight": "flight does not exist"})
		return
	case errors.Is(err, orders.ErrSeatTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat already taken"})
		return
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
		return
	// flights service
	case errors.Is(err, flights.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "flight not found"})
		return
	// catalog service
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		return
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "already exists"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
