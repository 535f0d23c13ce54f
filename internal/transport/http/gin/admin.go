package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/service"
)

func registerAdminRoutes(g *gin.RouterGroup, svcs *service.Services) {
	g.POST("/crews", handleCreateCrew(svcs))
	g.GET("/crews", handleListCrews(svcs))
	g.GET("/crews/:id", handleGetCrew(svcs))
	g.PUT("/crews/:id", handleUpdateCrew(svcs))

	g.POST("/airports", handleCreateAirport(svcs))
	g.GET("/airports", handleListAirports(svcs))
	g.GET("/airports/:id", handleGetAirport(svcs))
	g.PUT("/airports/:id", handleUpdateAirport(svcs))

	g.POST("/airplane-types", handleCreateAirplaneType(svcs))
	g.GET("/airplane-types", handleListAirplaneTypes(svcs))
	g.GET("/airplane-types/:id", handleGetAirplaneType(svcs))
	g.PUT("/airplane-types/:id", handleUpdateAirplaneType(svcs))

	g.POST("/airplanes", handleCreateAirplane(svcs))
	g.GET("/airplanes", handleListAirplanes(svcs))
	g.GET("/airplanes/:id", handleGetAirplane(svcs))
	g.PUT("/airplanes/:id", handleUpdateAirplane(svcs))

	g.POST("/routes", handleCreateRoute(svcs))
	g.GET("/routes", handleListRoutes(svcs))
	g.GET("/routes/:id", handleGetRoute(svcs))
	g.PUT("/routes/:id", handleUpdateRoute(svcs))

	g.POST("/flights", handleCreateAdminFlight(svcs))
	g.GET("/flights", handleListFlights(svcs))
	g.GET("/flights/:id", handleGetFlight(svcs))
	g.PUT("/flights/:id", handleUpdateAdminFlight(svcs))
}

func adminPage(c *gin.Context) (limit, offset int) {
	return parseIntDefault(c.Query("limit"), 100), parseIntDefault(c.Query("offset"), 0)
}

// @Summary  Create crew member
// @Param    req body  CrewRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /admin/crews [post]
func handleCreateCrew(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CrewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateCrew(c.Request.Context(), domain.Crew{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List crew members
// @Success  200 {array} CrewResponse
// @Router   /admin/crews [get]
func handleListCrews(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := adminPage(c)
		list, err := svcs.Catalog.ListCrews(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]CrewResponse, 0, len(list))
		for _, cr := range list {
			resp = append(resp, toCrewResponse(cr))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get crew member
// @Param    id  path  int  true  "Crew ID"
// @Success  200 {object} CrewResponse
// @Router   /admin/crews/{id} [get]
func handleGetCrew(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		cr, err := svcs.Catalog.GetCrew(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toCrewResponse(*cr))
	}
}

// @Summary  Update crew member
// @Param    id  path  int  true  "Crew ID"
// @Param    req body  CrewRequest true "payload"
// @Success  200 {object} CrewResponse
// @Router   /admin/crews/{id} [put]
func handleUpdateCrew(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req CrewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		cr := domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
		if err := svcs.Catalog.UpdateCrew(c.Request.Context(), cr); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toCrewResponse(cr))
	}
}

func toCrewResponse(cr domain.Crew) CrewResponse {
	return CrewResponse{
		ID:        cr.ID,
		FirstName: cr.FirstName,
		LastName:  cr.LastName,
		FullName:  cr.FullName(),
	}
}

// @Summary  Create airport
// @Param    req body  AirportRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  409 {object} ErrorResponse
// @Router   /admin/airports [post]
func handleCreateAirport(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AirportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateAirport(c.Request.Context(), domain.Airport{
			Name:           req.Name,
			ClosestBigCity: req.ClosestBigCity,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List airports
// @Success  200 {array} AirportResponse
// @Router   /admin/airports [get]
func handleListAirports(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := adminPage(c)
		list, err := svcs.Catalog.ListAirports(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]AirportResponse, 0, len(list))
		for _, a := range list {
			resp = append(resp, AirportResponse{
				ID:             a.ID,
				Name:           a.Name,
				ClosestBigCity: a.ClosestBigCity,
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get airport
// @Param    id  path  int  true  "Airport ID"
// @Success  200 {object} AirportResponse
// @Router   /admin/airports/{id} [get]
func handleGetAirport(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		a, err := svcs.Catalog.GetAirport(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AirportResponse{
			ID:             a.ID,
			Name:           a.Name,
			ClosestBigCity: a.ClosestBigCity,
		})
	}
}

// @Summary  Update airport
// @Param    id  path  int  true  "Airport ID"
// @Param    req body  AirportRequest true "payload"
// @Success  200 {object} AirportResponse
// @Router   /admin/airports/{id} [put]
func handleUpdateAirport(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req AirportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		a := domain.Airport{ID: id, Name: req.Name, ClosestBigCity: req.ClosestBigCity}
		if err := svcs.Catalog.UpdateAirport(c.Request.Context(), a); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AirportResponse{
			ID:             a.ID,
			Name:           a.Name,
			ClosestBigCity: a.ClosestBigCity,
		})
	}
}

// @Summary  Create airplane type
// @Param    req body  AirplaneTypeRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /admin/airplane-types [post]
func handleCreateAirplaneType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AirplaneTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateAirplaneType(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List airplane types
// @Success  200 {array} AirplaneTypeResponse
// @Router   /admin/airplane-types [get]
func handleListAirplaneTypes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := adminPage(c)
		list, err := svcs.Catalog.ListAirplaneTypes(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]AirplaneTypeResponse, 0, len(list))
		for _, at := range list {
			resp = append(resp, AirplaneTypeResponse{ID: at.ID, Name: at.Name})
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get airplane type
// @Param    id  path  int  true  "Airplane type ID"
// @Success  200 {object} AirplaneTypeResponse
// @Router   /admin/airplane-types/{id} [get]
func handleGetAirplaneType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		at, err := svcs.Catalog.GetAirplaneType(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AirplaneTypeResponse{ID: at.ID, Name: at.Name})
	}
}

// @Summary  Update airplane type
// @Param    id  path  int  true  "Airplane type ID"
// @Param    req body  AirplaneTypeRequest true "payload"
// @Success  200 {object} AirplaneTypeResponse
// @Router   /admin/airplane-types/{id} [put]
func handleUpdateAirplaneType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req AirplaneTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		at := domain.AirplaneType{ID: id, Name: req.Name}
		if err := svcs.Catalog.UpdateAirplaneType(c.Request.Context(), at); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AirplaneTypeResponse{ID: at.ID, Name: at.Name})
	}
}

// @Summary  Create airplane
// @Param    req body  AirplaneRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /admin/airplanes [post]
func handleCreateAirplane(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AirplaneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateAirplane(c.Request.Context(), domain.Airplane{
			Name:           req.Name,
			Rows:           req.Rows,
			SeatsInRow:     req.SeatsInRow,
			AirplaneTypeID: req.AirplaneTypeID,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List airplanes
// @Success  200 {array} AirplaneResponse
// @Router   /admin/airplanes [get]
func handleListAirplanes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := adminPage(c)
		list, err := svcs.Catalog.ListAirplanes(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]AirplaneResponse, 0, len(list))
		for _, a := range list {
			resp = append(resp, toAirplaneResponse(a))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get airplane
// @Param    id  path  int  true  "Airplane ID"
// @Success  200 {object} AirplaneResponse
// @Router   /admin/airplanes/{id} [get]
func handleGetAirplane(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		a, err := svcs.Catalog.GetAirplane(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toAirplaneResponse(*a))
	}
}

// @Summary  Update airplane
// @Param    id  path  int  true  "Airplane ID"
// @Param    req body  AirplaneRequest true "payload"
// @Success  200 {object} AirplaneResponse
// @Router   /admin/airplanes/{id} [put]
func handleUpdateAirplane(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req AirplaneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		a := domain.Airplane{
			ID:             id,
			Name:           req.Name,
			Rows:           req.Rows,
			SeatsInRow:     req.SeatsInRow,
			AirplaneTypeID: req.AirplaneTypeID,
		}
		if err := svcs.Catalog.UpdateAirplane(c.Request.Context(), a); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toAirplaneResponse(a))
	}
}

func toAirplaneResponse(a domain.Airplane) AirplaneResponse {
	return AirplaneResponse{
		ID:             a.ID,
		Name:           a.Name,
		Rows:           a.Rows,
		SeatsInRow:     a.SeatsInRow,
		Capacity:       a.Capacity(),
		AirplaneTypeID: a.AirplaneTypeID,
	}
}

// @Summary  Create route
// @Param    req body  RouteRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse "source equals destination"
// @Router   /admin/routes [post]
func handleCreateRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Catalog.CreateRoute(c.Request.Context(), domain.Route{
			SourceID:      req.SourceID,
			DestinationID: req.DestinationID,
			Distance:      req.Distance,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  List routes
// @Success  200 {array} RouteResponse
// @Router   /admin/routes [get]
func handleListRoutes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := adminPage(c)
		list, err := svcs.Catalog.ListRoutes(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		resp := make([]RouteResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toRouteResponse(&list[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary  Get route
// @Param    id  path  int  true  "Route ID"
// @Success  200 {object} RouteResponse
// @Router   /admin/routes/{id} [get]
func handleGetRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		rt, err := svcs.Catalog.GetRoute(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toRouteResponse(rt))
	}
}

// @Summary  Update route
// @Param    id  path  int  true  "Route ID"
// @Param    req body  RouteRequest true "payload"
// @Success  200 {object} RouteResponse
// @Router   /admin/routes/{id} [put]
func handleUpdateRoute(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		rt := domain.Route{
			ID:            id,
			SourceID:      req.SourceID,
			DestinationID: req.DestinationID,
			Distance:      req.Distance,
		}
		if err := svcs.Catalog.UpdateRoute(c.Request.Context(), rt); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, RouteResponse{
			ID:            rt.ID,
			SourceID:      rt.SourceID,
			DestinationID: rt.DestinationID,
			Distance:      rt.Distance,
		})
	}
}

// @Summary  Create flight
// @Param    req body  FlightRequest true "payload"
// @Success  201 {object} IDResponse
// @Router   /admin/flights [post]
func handleCreateAdminFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, ok := bindFlightRequest(c, 0)
		if !ok {
			return
		}
		id, err := svcs.Catalog.CreateFlight(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  Update flight
// @Param    id  path  int  true  "Flight ID"
// @Param    req body  FlightRequest true "payload"
// @Success  200 {object} IDResponse
// @Router   /admin/flights/{id} [put]
func handleUpdateAdminFlight(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		f, ok := bindFlightRequest(c, id)
		if !ok {
			return
		}
		if err := svcs.Catalog.UpdateFlight(c.Request.Context(), f); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, IDResponse{ID: id})
	}
}

func bindFlightRequest(c *gin.Context, id int64) (domain.Flight, bool) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return domain.Flight{}, false
	}
	departs, err := parseRFC3339(req.DepartureTime)
	if err != nil {
		badRequest(c, "invalid departure_time (RFC3339)")
		return domain.Flight{}, false
	}
	arrives, err := parseRFC3339(req.ArrivalTime)
	if err != nil {
		badRequest(c, "invalid arrival_time (RFC3339)")
		return domain.Flight{}, false
	}
	if !arrives.After(departs) {
		badRequest(c, "arrival_time must be after departure_time")
		return domain.Flight{}, false
	}
	return domain.Flight{
		ID:            id,
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: departs,
		ArrivalTime:   arrives,
		CrewIDs:       req.CrewIDs,
	}, true
}
