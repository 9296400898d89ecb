package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/repository"
)

// familyParam reads the event family suffix from the :n path parameter.
// Suffixes are positive integers; anything else is rejected before a
// table name is ever assembled from it.
func familyParam(c echo.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// familyQuery reads the family suffix from the ?family= query parameter.
// Task and slot ids are only unique within a family, so endpoints that
// address rows by id need the family spelled out alongside.
func familyQuery(c echo.Context) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("family")))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// writeRepoError maps repository errors onto HTTP responses.  Sentinel
// lookups become 404s, capacity and slug conflicts 409s, validation
// failures 400s.  Provisioning and migration errors keep their step
// identity in the response body so an administrator can tell what state
// the database was left in.
func writeRepoError(c echo.Context, err error) error {
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	}
	var pe *repository.ProvisionError
	if errors.As(err, &pe) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": pe.Error(), "table": pe.Table})
	}
	var me *repository.MigrationError
	if errors.As(err, &me) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": me.Error(), "step": me.Step})
	}
	switch {
	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrSlotNotFound),
		errors.Is(err, repository.ErrFamilyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSlotFull),
		errors.Is(err, repository.ErrSlugTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
