package sharing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches the sharing routes under /records. The static
// segments (shared, share) and the :id/share suffix coexist with the record
// routes on the same group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/records")
	g.POST("/:id/share", h.Share)
	g.GET("/shared", h.ListShared)
	g.DELETE("/share/:id", h.Revoke)
}

func (h *Handler) Share(c echo.Context) error {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Health record not found")
	}

	var in ShareInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	g, err := h.svc.Share(c.Request().Context(), recordID, in)
	if errors.Is(err, ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Health record not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to share health record")
	}
	return c.JSON(http.StatusOK, g)
}

func (h *Handler) ListShared(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}

	shared, err := h.svc.ListForGrantee(c.Request().Context(), email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch shared records")
	}
	return c.JSON(http.StatusOK, shared)
}

func (h *Handler) Revoke(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sharing not found")
	}

	if err := h.svc.Revoke(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sharing not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove sharing")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Sharing removed successfully"})
}
