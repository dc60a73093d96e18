package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-resolver/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. This layer is
// thin I/O plumbing: it extracts fields, calls the engine, and renders the
// structured result. Absent numeric fields serialize as JSON nulls; clients
// translate those into display placeholders.
func RegisterRoutes(app *fiber.App, resolver *weather.Resolver) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/resolve", func(c *fiber.Ctx) error {
		req, err := parseResolveQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result := resolver.Resolve(c.Context(), req.toLocationQuery(), req.Date)
		return c.JSON(toResponse(result))
	})
}

// resolveQuery holds the query parameters for a single point-in-time lookup.
// Either a free-text location or a city must be given alongside the date.
type resolveQuery struct {
	Location string
	City     string
	State    string
	Country  string
	Date     string `validate:"required"`
}

func (q resolveQuery) toLocationQuery() weather.LocationQuery {
	return weather.LocationQuery{
		Freeform: q.Location,
		City:     q.City,
		State:    q.State,
		Country:  q.Country,
	}
}

func parseResolveQuery(c *fiber.Ctx) (resolveQuery, error) {
	q := resolveQuery{
		Location: c.Query("location"),
		City:     c.Query("city"),
		State:    c.Query("state"),
		Country:  c.Query("country"),
		Date:     c.Query("date"),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	if q.Location == "" && q.City == "" {
		return q, errors.New("location or city query parameter is required")
	}
	return q, nil
}

// resolveResponse is the wire shape of a resolution. Error is false on
// success; on failure Kind and Message carry the typed reason while the
// condition and source fields stay populated for display.
type resolveResponse struct {
	weather.Result
	Error   bool   `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func toResponse(result weather.Result) resolveResponse {
	resp := resolveResponse{Result: result}
	if result.Err != nil {
		resp.Error = true
		resp.Kind = string(result.Err.Kind)
		resp.Message = result.Err.Message
	}
	return resp
}
