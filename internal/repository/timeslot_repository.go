package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
)

// TimeSlotRepo provides CRUD for the time slots of one known family.
// Slots composed in the admin UI carry temp- placeholder ids until the
// owning task is saved; only handlers deal with those, this repository
// always works on persisted rows.
type TimeSlotRepo struct {
	db *database.DB
}

// NewTimeSlotRepo returns a TimeSlotRepo bound to the given database.
func NewTimeSlotRepo(db *database.DB) *TimeSlotRepo { return &TimeSlotRepo{db: db} }

// ValidateSlot enforces the slot preconditions shared by Create and
// Update: start, end and a positive capacity are all required.  It is
// exported so handlers that save a task together with its slots can
// check the whole batch before writing anything.
func ValidateSlot(s *model.TimeSlot) error {
	if strings.TrimSpace(s.StartTime) == "" {
		return &ValidationError{Field: "start_time"}
	}
	if strings.TrimSpace(s.EndTime) == "" {
		return &ValidationError{Field: "end_time"}
	}
	if s.MaxVolunteers <= 0 {
		return &ValidationError{Field: "max_volunteers"}
	}
	return nil
}

// Create inserts a slot for s.TaskID into family n, assigning a fresh id
// and a zero signup counter.
func (r *TimeSlotRepo) Create(ctx context.Context, n int, s *model.TimeSlot) error {
	if err := ValidateSlot(s); err != nil {
		return err
	}
	s.ID = uuid.NewString()
	s.CurrentVolunteers = 0
	q := fmt.Sprintf(`INSERT INTO %s (id, task_id, start_time, end_time, max_volunteers, current_volunteers)
		VALUES (?, ?, ?, ?, ?, 0)`, family.ForSuffix(n).TimeSlots())
	_, err := r.db.ExecContext(ctx, q, s.ID, s.TaskID, s.StartTime, s.EndTime, s.MaxVolunteers)
	return err
}

// ListByTask returns the persisted slots of a task, earliest first.
func (r *TimeSlotRepo) ListByTask(ctx context.Context, n int, taskID string) ([]model.TimeSlot, error) {
	q := fmt.Sprintf(`SELECT id, task_id, start_time, end_time, max_volunteers, current_volunteers
		FROM %s WHERE task_id = ? ORDER BY start_time, end_time`, family.ForSuffix(n).TimeSlots())
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]model.TimeSlot, 0)
	for rows.Next() {
		var s model.TimeSlot
		var start, end text
		if err := rows.Scan(&s.ID, &s.TaskID, &start, &end, &s.MaxVolunteers, &s.CurrentVolunteers); err != nil {
			return nil, err
		}
		s.StartTime = string(start)
		s.EndTime = string(end)
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Update rewrites a slot's window and capacity.  The signup counter is
// left alone; capacity may shrink below it, in which case the slot simply
// stops accepting new signups.
func (r *TimeSlotRepo) Update(ctx context.Context, n int, s *model.TimeSlot) error {
	if err := ValidateSlot(s); err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE %s SET start_time = ?, end_time = ?, max_volunteers = ? WHERE id = ?`,
		family.ForSuffix(n).TimeSlots())
	res, err := r.db.ExecContext(ctx, q, s.StartTime, s.EndTime, s.MaxVolunteers, s.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// Delete removes a persisted slot; its signups go with it via cascade.
func (r *TimeSlotRepo) Delete(ctx context.Context, n int, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, family.ForSuffix(n).TimeSlots())
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
