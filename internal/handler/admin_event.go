package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/model"
	"github.com/vestbyenif/volunteer-api/internal/repository"
)

// AdminHandler bundles the repositories behind the administrator API.
type AdminHandler struct {
	Families *repository.FamilyRepo
	Events   *repository.EventRepo
	Tasks    *repository.TaskRepo
	Slots    *repository.TimeSlotRepo
	Signups  *repository.SignupRepo
	Migrator *repository.Migrator
	Registry *repository.FamilyRegistry
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(families *repository.FamilyRepo, events *repository.EventRepo,
	tasks *repository.TaskRepo, slots *repository.TimeSlotRepo,
	signups *repository.SignupRepo, migrator *repository.Migrator,
	registry *repository.FamilyRegistry) *AdminHandler {
	if families == nil || events == nil || tasks == nil || slots == nil ||
		signups == nil || migrator == nil || registry == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Families: families,
		Events:   events,
		Tasks:    tasks,
		Slots:    slots,
		Signups:  signups,
		Migrator: migrator,
		Registry: registry,
	}
}

type createEventReq struct {
	FriendlyName    string `json:"friendly_name"`
	EventDate       string `json:"event_date"`
	ImageURL        string `json:"image_url"`
	Description     string `json:"event_description"`
	LongDescription string `json:"event_longdescription"`
	Address         string `json:"address"`
}

// CreateEvent handles POST /v1/admin/events.  It provisions a fresh
// table family and seeds the event metadata row; the response carries
// the allocated family suffix alongside the event.
func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ev := &model.Event{
		FriendlyName:    strings.TrimSpace(req.FriendlyName),
		EventDate:       strings.TrimSpace(req.EventDate),
		ImageURL:        strings.TrimSpace(req.ImageURL),
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Address:         strings.TrimSpace(req.Address),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if _, err := h.Families.Create(ctx, ev); err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// ListEvents handles GET /v1/admin/events and returns every event
// including hidden ones.
func (h *AdminHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// UpdateEvent handles PUT /v1/admin/events/:id and rewrites the event's
// descriptive fields.  The slug never changes here, so links published
// before a rename keep resolving.
func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	id := c.Param("id")
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	ev, err := h.Events.FindByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err)
	}
	ev.FriendlyName = strings.TrimSpace(req.FriendlyName)
	ev.EventDate = strings.TrimSpace(req.EventDate)
	ev.ImageURL = strings.TrimSpace(req.ImageURL)
	ev.Description = req.Description
	ev.LongDescription = req.LongDescription
	ev.Address = strings.TrimSpace(req.Address)
	if ev.FriendlyName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "friendly_name is required"})
	}

	if err := h.Events.Update(ctx, ev); err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

type deleteReq struct {
	Confirm bool `json:"confirm"`
}

// DeleteEvent handles DELETE /v1/admin/events/:id.  Deleting an event
// drops its whole table family: the event, its tasks, slots and every
// signup.  Irreversible, so the request body must carry an explicit
// confirm flag.
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	var req deleteReq
	if err := c.Bind(&req); err != nil || !req.Confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirmation required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	ev, err := h.Events.FindByID(ctx, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	if err := h.Families.Drop(ctx, ev.Family); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteFamily handles DELETE /v1/admin/families/:n, the operator-level
// variant of DeleteEvent for families whose seed row is gone or was
// never written.  Same confirm flag, addressed by suffix.
func (h *AdminHandler) DeleteFamily(c echo.Context) error {
	n, ok := familyParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid family"})
	}
	var req deleteReq
	if err := c.Bind(&req); err != nil || !req.Confirm {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "confirmation required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Families.Drop(ctx, n); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleEventVisibility handles PATCH /v1/admin/events/:id/visibility.
// The event is located across families by id; the flag flips and the
// new value is returned.  A second call restores the original state.
func (h *AdminHandler) ToggleEventVisibility(c echo.Context) error {
	ctx := c.Request().Context()
	ev, err := h.Events.FindByID(ctx, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	hidden, err := h.Events.ToggleHidden(ctx, ev.Family, ev.ID)
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": ev.ID, "is_hidden": hidden})
}

// ToggleTaskVisibility handles PATCH /v1/admin/tasks/:id/visibility?family=N.
func (h *AdminHandler) ToggleTaskVisibility(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Tasks.GetByID(ctx, n, c.Param("id")); err != nil {
		return writeRepoError(c, err)
	}
	hidden, err := h.Events.ToggleHidden(ctx, n, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "is_hidden": hidden})
}

type taskOrderReq struct {
	IDs []string `json:"ids"`
}

// UpdateTaskOrder handles PUT /v1/admin/events/:id/task-order and
// persists a drag-and-drop reordering of the event's tasks.
func (h *AdminHandler) UpdateTaskOrder(c echo.Context) error {
	var req taskOrderReq
	if err := c.Bind(&req); err != nil || len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids required"})
	}
	ctx := c.Request().Context()
	ev, err := h.Events.FindByID(ctx, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	if err := h.Tasks.UpdateOrder(ctx, ev.Family, req.IDs); err != nil {
		return writeRepoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
