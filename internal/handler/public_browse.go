// Package handler exposes HTTP handlers for both the admin and the
// public API.  This file defines the public browsing endpoints: guests
// can list events, open an event by slug and inspect a task's time
// slots without authentication.  Volunteer contact details are never
// included in public responses.

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/model"
	"github.com/vestbyenif/volunteer-api/internal/repository"
)

// PublicHandler aggregates the repositories needed for unauthenticated
// browsing.  It produces sanitized responses; hidden events and tasks
// are filtered out.
type PublicHandler struct {
	Events  *repository.EventRepo
	Tasks   *repository.TaskRepo
	Slots   *repository.TimeSlotRepo
	Signups *repository.SignupRepo
}

// PublicEvent is an event as exposed on listing cards.
type PublicEvent struct {
	ID           string `json:"id"`
	Family       int    `json:"family"`
	FriendlyName string `json:"friendly_name"`
	Slug         string `json:"slug"`
	EventDate    string `json:"event_date"`
	ImageURL     string `json:"image_url"`
	Description  string `json:"event_description"`
}

// PublicTask is a task in event detail responses.  SignupCount lets the
// frontend render progress without a second request.
type PublicTask struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	Date             string `json:"date"`
	NeededVolunteers int    `json:"needed_volunteers"`
	Address          string `json:"address"`
	SortOrder        int64  `json:"sort_order"`
	SignupCount      int    `json:"signup_count"`
}

// PublicSlot is a time slot on the task detail page.  Remaining is the
// number of free places; names of volunteers already signed up are not
// exposed.
type PublicSlot struct {
	ID            string `json:"id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	MaxVolunteers int    `json:"max_volunteers"`
	Remaining     int    `json:"remaining"`
}

func publicEvent(ev model.Event) PublicEvent {
	return PublicEvent{
		ID:           ev.ID,
		Family:       ev.Family,
		FriendlyName: ev.FriendlyName,
		Slug:         ev.Slug,
		EventDate:    ev.EventDate,
		ImageURL:     ev.ImageURL,
		Description:  ev.Description,
	}
}

func publicSlot(s model.TimeSlot) PublicSlot {
	remaining := s.MaxVolunteers - s.CurrentVolunteers
	if remaining < 0 {
		remaining = 0 // capacity shrunk below the counter after signups
	}
	return PublicSlot{
		ID:            s.ID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		MaxVolunteers: s.MaxVolunteers,
		Remaining:     remaining,
	}
}

// ListEvents handles GET /v1/events.  Hidden events are skipped; the
// admin listing endpoint is the one that shows everything.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.List(c.Request().Context())
	if err != nil {
		return writeRepoError(c, err)
	}
	out := make([]PublicEvent, 0, len(events))
	for _, ev := range events {
		if ev.IsHidden {
			continue
		}
		out = append(out, publicEvent(ev))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEventBySlug handles GET /v1/events/:slug and returns the event
// together with its visible tasks and their signup counts.  A hidden
// event responds 404 exactly like a missing one.
func (h *PublicHandler) GetEventBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	ev, err := h.Events.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		return writeRepoError(c, err)
	}
	if ev.IsHidden {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrEventNotFound.Error()})
	}

	tasks, err := h.Tasks.ListByFamily(ctx, ev.Family)
	if err != nil {
		return writeRepoError(c, err)
	}
	out := make([]PublicTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsHidden {
			continue
		}
		count, err := h.Signups.CountByTask(ctx, ev.Family, t.ID)
		if err != nil {
			return writeRepoError(c, err)
		}
		out = append(out, PublicTask{
			ID:               t.ID,
			Title:            t.Title,
			ShortDescription: t.ShortDescription,
			Date:             t.Date,
			NeededVolunteers: t.NeededVolunteers,
			Address:          t.Address,
			SortOrder:        t.SortOrder,
			SignupCount:      count,
		})
	}

	resp := echo.Map{
		"event":                 publicEvent(*ev),
		"event_longdescription": ev.LongDescription,
		"address":               ev.Address,
		"tasks":                 out,
	}
	return c.JSON(http.StatusOK, resp)
}

// GetTask handles GET /v1/tasks/:id?family=N and returns the task with
// its time slots and remaining capacity per slot.
func (h *PublicHandler) GetTask(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	ctx := c.Request().Context()
	t, err := h.Tasks.GetByID(ctx, n, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	if t.IsHidden {
		return c.JSON(http.StatusNotFound, echo.Map{"error": repository.ErrTaskNotFound.Error()})
	}
	slots, err := h.Slots.ListByTask(ctx, n, t.ID)
	if err != nil {
		return writeRepoError(c, err)
	}
	out := make([]PublicSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, publicSlot(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"task": t, "time_slots": out})
}
