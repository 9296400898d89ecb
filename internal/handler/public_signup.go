package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/model"
	"github.com/vestbyenif/volunteer-api/internal/queue"
	queue_publisher "github.com/vestbyenif/volunteer-api/internal/service"
)

type signupReq struct {
	TimeSlotID string `json:"time_slot_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Comment    string `json:"comment"`
	IsParent   bool   `json:"is_parent"`
	ChildName  string `json:"child_name"`
	TeamName   string `json:"team_name"`
}

// CreateSignup handles POST /v1/tasks/:id/signups?family=N.  The
// repository claims a place on the slot and inserts the registration in
// one transaction; a full slot responds 409.  After the commit a
// signup.confirmed event is published to the broker for the logging
// consumer; publishing is best-effort and never fails the request the
// volunteer already won.
func (h *PublicHandler) CreateSignup(c echo.Context) error {
	n, ok := familyQuery(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "family query parameter required"})
	}
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	t, err := h.Tasks.GetByID(ctx, n, c.Param("id"))
	if err != nil {
		return writeRepoError(c, err)
	}
	if t.IsHidden {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}

	s := &model.Signup{
		TimeSlotID: strings.TrimSpace(req.TimeSlotID),
		TaskID:     t.ID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Comment:    req.Comment,
		IsParent:   req.IsParent,
		ChildName:  strings.TrimSpace(req.ChildName),
		TeamName:   strings.TrimSpace(req.TeamName),
	}
	if err := h.Signups.Create(ctx, n, s); err != nil {
		return writeRepoError(c, err)
	}

	// Fire-and-forget: the registration is committed, a broker outage
	// only costs the log line.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishSignupConfirmed(pubCtx, queue.SignupConfirmedEvent{
			SignupID:    s.ID,
			TaskID:      t.ID,
			TaskTitle:   t.Title,
			Family:      n,
			TimeSlotID:  s.TimeSlotID,
			Volunteer:   s.Name,
			TeamName:    s.TeamName,
			ConfirmedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"id":           s.ID,
		"time_slot_id": s.TimeSlotID,
		"task_id":      s.TaskID,
		"name":         s.Name,
	})
}
