package remotes

import (
	"errors"
	"fmt"
	"reflect"

	"remote-loader/core/logger"
	"remote-loader/core/remote"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the remote catalogue.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the remote routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/remotes")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleSave)
	group.Get("/:name/routes", h.HandleRoutes)
	group.Delete("/:name", h.HandleDelete)

	app.Get("/stylesheets", h.HandleStylesheets)
	app.Get("/stylesheets.html", h.HandleStylesheetsHTML)
}

// RoutesResponse is the body of GET /remotes/:name/routes.
type RoutesResponse struct {
	Name        string        `json:"name"`
	Routes      []any         `json:"routes"`
	Fallback    bool          `json:"fallback"`
	Error       string        `json:"error,omitempty"`
	ElapsedMs   int64         `json:"elapsed_ms"`
	Stylesheets []remote.Link `json:"stylesheets"`
}

// HandleList lists the known remotes.
// @Summary List Remotes
// @Description Lists the remotes declared in configuration merged with the ones stored in the database.
// @Tags remotes
// @Produce json
// @Success 200 {object} map[string]interface{} "Remotes"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /remotes [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	defs, err := h.service.Remotes(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list remotes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"remotes": defs})
}

// HandleRoutes loads a remote and returns its routes.
// @Summary Load Remote Routes
// @Description Loads the remote's entry module and returns its RemoteRoutes export. An unavailable remote yields the blank fallback route with fallback=true.
// @Tags remotes
// @Produce json
// @Param name path string true "Remote name"
// @Success 200 {object} RoutesResponse "Routes"
// @Failure 404 {object} map[string]string "Unknown remote"
// @Router /remotes/{name}/routes [get]
func (h *Handler) HandleRoutes(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	def, err := h.service.Find(c.Context(), name)
	if errors.Is(err, ErrUnknownRemote) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to find remote", zap.String("remote", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := h.service.Load(c.Context(), def)
	resp := RoutesResponse{
		Name:        def.Name,
		Routes:      Sanitize(out.Routes),
		Fallback:    out.Fallback,
		ElapsedMs:   out.Elapsed.Milliseconds(),
		Stylesheets: h.service.Stylesheets(),
	}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	l.Info("Remote routes served", zap.String("remote", name), zap.Bool("fallback", out.Fallback), zap.Int("routes", len(resp.Routes)))
	return c.JSON(resp)
}

// HandleSave stores a remote.
// @Summary Save Remote
// @Description Creates or replaces a remote in the database catalogue.
// @Tags remotes
// @Accept json
// @Produce json
// @Param remote body remote.Definition true "Remote definition"
// @Success 201 {object} remote.Definition "Saved"
// @Failure 400 {object} map[string]string "Invalid definition"
// @Failure 503 {object} map[string]string "No catalogue database"
// @Router /remotes [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	var def remote.Definition
	if err := c.BodyParser(&def); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.Save(c.Context(), def); err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(def)
}

// HandleDelete removes a stored remote.
// @Summary Delete Remote
// @Description Removes a remote from the database catalogue.
// @Tags remotes
// @Param name path string true "Remote name"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Unknown remote"
// @Failure 503 {object} map[string]string "No catalogue database"
// @Router /remotes/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("name")); err != nil {
		return h.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStylesheets lists the inserted stylesheet links.
// @Summary List Stylesheets
// @Description Lists the stylesheet links inserted by remote loads, in insertion order.
// @Tags stylesheets
// @Produce json
// @Success 200 {object} map[string]interface{} "Stylesheets"
// @Router /stylesheets [get]
func (h *Handler) HandleStylesheets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stylesheets": h.service.Stylesheets()})
}

// HandleStylesheetsHTML renders the inserted stylesheet links.
// @Summary Render Stylesheets
// @Description Renders the inserted stylesheet links as HTML link tags for a host page head.
// @Tags stylesheets
// @Produce html
// @Success 200 {string} string "Link tags"
// @Router /stylesheets.html [get]
func (h *Handler) HandleStylesheetsHTML(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(string(h.service.StylesheetsHTML()))
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNoStore):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUnknownRemote):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, remote.ErrInvalidRemote):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Remote catalogue write failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// Sanitize copies routes into a JSON-encodable form. Functions exported by a
// remote (lazy route loaders, guards) are replaced by "[function]".
func Sanitize(routes []remote.RouteEntry) []any {
	out := make([]any, len(routes))
	for i, r := range routes {
		out[i] = sanitizeValue(r)
	}
	return out
}

// sanitizeValue walks maps and sequences of any element type, so typed
// values such as remote.ModuleRecord or []map[string]any are covered too.
func sanitizeValue(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return "[function]"
	case reflect.Chan, reflect.UnsafePointer:
		return nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return sanitizeValue(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[mapKey(iter.Key())] = sanitizeValue(iter.Value().Interface())
		}
		return m
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		fallthrough
	case reflect.Array:
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = sanitizeValue(rv.Index(i).Interface())
		}
		return s
	}
	return v
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}
