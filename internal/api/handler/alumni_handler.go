package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jiet-alumni/alumni-directory/internal/api/metrics"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// AlumniHandler handles HTTP requests for the alumni directory.
type AlumniHandler struct {
	service ports.AlumniService
}

func NewAlumniHandler(service ports.AlumniService) *AlumniHandler {
	return &AlumniHandler{service: service}
}

// Create handles POST /api/alumni.
//
// @Summary      Create an alumni record
// @Tags         alumni
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      alumniRequest  true  "Alumni record"
// @Success      201   {object}  alumniResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/alumni [post]
func (h *AlumniHandler) Create(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	var req alumniRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(c.Request().Context(), identity, toAlumniInput(req))
	if err != nil {
		return err
	}

	metrics.AlumniWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toAlumniResponse(created))
}

// List handles GET /api/alumni.
//
// @Summary      List the alumni directory
// @Tags         alumni
// @Produce      json
// @Param        q      query     string  false  "Case-insensitive search on name, email, company and department"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Success      200    {object}  alumniListResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/alumni [get]
func (h *AlumniHandler) List(c echo.Context) error {
	q := listAlumniQuery{Q: c.QueryParam("q")}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.List(c.Request().Context(), ports.ListAlumniInput{
		Query: q.Q,
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAlumniListResponse(page))
}

// Get handles GET /api/alumni/:id.
//
// @Summary      Get an alumni record
// @Tags         alumni
// @Produce      json
// @Param        id   path      string  true  "Alumni id"
// @Success      200  {object}  alumniResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/alumni/{id} [get]
func (h *AlumniHandler) Get(c echo.Context) error {
	a, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAlumniResponse(a))
}

// Update handles PUT /api/alumni/:id.
//
// @Summary      Replace an alumni record
// @Tags         alumni
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Alumni id"
// @Param        body  body      alumniRequest  true  "Alumni record"
// @Success      200   {object}  alumniResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/alumni/{id} [put]
func (h *AlumniHandler) Update(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	var req alumniRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), toAlumniInput(req))
	if err != nil {
		return err
	}

	metrics.AlumniWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toAlumniResponse(updated))
}

// Delete handles DELETE /api/alumni/:id.
//
// @Summary      Delete an alumni record
// @Tags         alumni
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Alumni id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/alumni/{id} [delete]
func (h *AlumniHandler) Delete(c echo.Context) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	metrics.AlumniWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Deleted successfully"})
}
