package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/model"
	"github.com/vestbyenif/volunteer-api/internal/repository"
)

type slotReq struct {
	ID            string `json:"id"` // empty or temp- for slots not yet saved
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	MaxVolunteers int    `json:"max_volunteers"`
}

type taskReq struct {
	Title            string    `json:"title"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Date             string    `json:"date"`
	NeededVolunteers int       `json:"needed_volunteers"`
	Address          string    `json:"address"`
	Family           int       `json:"family"` // on update: a different value moves the task
	TimeSlots        []slotReq `json:"time_slots"`
}

// slotsFromReq turns the request's slot payloads into models, keeping
// body ids so temp- placeholders survive to the save step.
func slotsFromReq(in []slotReq) []model.TimeSlot {
	out := make([]model.TimeSlot, 0, len(in))
	for _, sr := range in {
		out = append(out, model.TimeSlot{
			ID:            sr.ID,
			StartTime:     strings.TrimSpace(sr.StartTime),
			EndTime:       strings.TrimSpace(sr.EndTime),
			MaxVolunteers: sr.MaxVolunteers,
		})
	}
	return out
}

// validateSlots checks a whole batch before anything is written: the
// task and its slots save together, so one bad slot must reject the
// request without leaving the task or earlier slots behind.
func validateSlots(slots []model.TimeSlot) error {
	for i := range slots {
		if err := repository.ValidateSlot(&slots[i]); err != nil {
			return err
		}
	}
	return nil
}

// CreateTask handles POST /v1/admin/families/:n/tasks.  The admin UI
// composes a task together with its slots before saving, so the request
// carries both; slot ids in the body are placeholders and are replaced
// with real ids on insert.
func (h *AdminHandler) CreateTask(c echo.Context) error {
	n, ok := familyParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid family"})
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	slots := slotsFromReq(req.TimeSlots)
	if err := validateSlots(slots); err != nil {
		return writeRepoError(c, err)
	}

	ctx := c.Request().Context()
	t := &model.Task{
		Title:            strings.TrimSpace(req.Title),
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Date:             strings.TrimSpace(req.Date),
		NeededVolunteers: req.NeededVolunteers,
		Address:          strings.TrimSpace(req.Address),
	}
	if err := h.Tasks.Create(ctx, n, t); err != nil {
		return writeRepoError(c, err)
	}

	for i := range slots {
		slots[i].ID = ""
		slots[i].TaskID = t.ID
		if err := h.Slots.Create(ctx, n, &slots[i]); err != nil {
			return writeRepoError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"task": t, "time_slots": slots})
}

// UpdateTask handles PUT /v1/admin/tasks/:id?family=N.  Besides field
// edits it covers two structural changes: slots with temp- placeholder
// ids are inserted as new rows, and a body family differing from the
// query parameter moves the whole task (slots and signups included) to
// that family.  The migration runs first so the field edits land on the
// task's new id.
func (h *AdminHandler) UpdateTask(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	id := c.Param("id")
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	slots := slotsFromReq(req.TimeSlots)
	if err := validateSlots(slots); err != nil {
		return writeRepoError(c, err)
	}

	ctx := c.Request().Context()
	if req.Family != 0 && req.Family != n {
		moved, err := h.Migrator.MigrateTask(ctx, id, n, req.Family)
		if err != nil {
			return writeRepoError(c, err)
		}
		id = moved
		n = req.Family
	}

	t := &model.Task{
		ID:               id,
		Family:           n,
		Title:            strings.TrimSpace(req.Title),
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Date:             strings.TrimSpace(req.Date),
		NeededVolunteers: req.NeededVolunteers,
		Address:          strings.TrimSpace(req.Address),
	}
	if err := h.Tasks.Update(ctx, t); err != nil {
		return writeRepoError(c, err)
	}

	for i := range slots {
		s := &slots[i]
		fresh := s.ID == "" || s.IsTemporary()
		s.TaskID = id
		if fresh {
			if err := h.Slots.Create(ctx, n, s); err != nil {
				return writeRepoError(c, err)
			}
		} else {
			if err := h.Slots.Update(ctx, n, s); err != nil {
				return writeRepoError(c, err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"task": t, "time_slots": slots})
}

// DeleteTask handles DELETE /v1/admin/tasks/:id?family=N.  The family's
// cascade constraints remove the task's slots and signups with it.
func (h *AdminHandler) DeleteTask(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	if err := h.Tasks.Delete(c.Request().Context(), n, c.Param("id")); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTimeSlot handles DELETE /v1/admin/timeslots/:id?family=N.  A
// temp- placeholder id never reached the database, so deleting one is a
// client error rather than a lookup miss.
func (h *AdminHandler) DeleteTimeSlot(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	id := c.Param("id")
	if strings.HasPrefix(id, model.TempIDPrefix) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot was never saved"})
	}
	if err := h.Slots.Delete(c.Request().Context(), n, id); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTaskSignups handles GET /v1/admin/tasks/:id/signups?family=N and
// returns the full signup rows including contact details.  Only the
// admin API exposes these fields.
func (h *AdminHandler) ListTaskSignups(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Tasks.GetByID(ctx, n, c.Param("id")); err != nil {
		return writeRepoError(c, err)
	}
	signups, err := h.Signups.ListByTask(ctx, n, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": signups})
}
