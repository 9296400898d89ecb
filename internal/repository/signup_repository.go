package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
)

// SignupRepo persists volunteer registrations for one known family.
type SignupRepo struct {
	db *database.DB
}

// NewSignupRepo returns a SignupRepo bound to the given database.
func NewSignupRepo(db *database.DB) *SignupRepo { return &SignupRepo{db: db} }

// Create registers a volunteer on a time slot.  Name and a time slot id
// are required.  The capacity check and counter increment are one
// conditional UPDATE: it only matches while current_volunteers is below
// max_volunteers, so two signups racing for the last place cannot both
// succeed.  A zero-row match on an existing slot means the slot is full
// (ErrSlotFull); on a missing slot, ErrSlotNotFound.  The increment and
// the signup insert commit together.
func (r *SignupRepo) Create(ctx context.Context, n int, s *model.Signup) error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(s.TimeSlotID) == "" {
		return &ValidationError{Field: "time_slot_id"}
	}
	ts := family.ForSuffix(n)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	claim := fmt.Sprintf(`UPDATE %s SET current_volunteers = current_volunteers + 1
		WHERE id = ? AND current_volunteers < max_volunteers`, ts.TimeSlots())
	res, err := tx.ExecContext(ctx, claim, s.TimeSlotID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists string
		err := tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT id FROM %s WHERE id = ?`, ts.TimeSlots()), s.TimeSlotID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotNotFound
		}
		if err != nil {
			return err
		}
		return ErrSlotFull
	}

	s.ID = uuid.NewString()
	insert := fmt.Sprintf(`INSERT INTO %s (id, time_slot_id, task_id, name, email, phone,
		comment, is_parent, child_name, team_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, ts.Signups())
	if _, err := tx.ExecContext(ctx, insert, s.ID, s.TimeSlotID, s.TaskID, s.Name,
		s.Email, s.Phone, s.Comment, s.IsParent, s.ChildName, s.TeamName); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByTask returns every signup against a task's slots.  Only admin
// views call this; volunteer contact details never reach public
// responses.
func (r *SignupRepo) ListByTask(ctx context.Context, n int, taskID string) ([]model.Signup, error) {
	q := fmt.Sprintf(`SELECT id, time_slot_id, task_id, name, email, phone, comment,
		is_parent, child_name, team_name, created_at FROM %s WHERE task_id = ? ORDER BY created_at`,
		family.ForSuffix(n).Signups())
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSignups(rows)
}

// CountByTask returns the number of signups against a task.
func (r *SignupRepo) CountByTask(ctx context.Context, n int, taskID string) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE task_id = ?`, family.ForSuffix(n).Signups())
	var count int
	if err := r.db.QueryRowContext(ctx, q, taskID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// collectSignups drains a signup result set.
func collectSignups(rows *sql.Rows) ([]model.Signup, error) {
	signups := make([]model.Signup, 0)
	for rows.Next() {
		var s model.Signup
		var slotID, taskID, email, phone, comment, child, team, created text
		if err := rows.Scan(&s.ID, &slotID, &taskID, &s.Name, &email, &phone, &comment,
			&s.IsParent, &child, &team, &created); err != nil {
			return nil, err
		}
		s.TimeSlotID = string(slotID)
		s.TaskID = string(taskID)
		s.Email = string(email)
		s.Phone = string(phone)
		s.Comment = string(comment)
		s.ChildName = string(child)
		s.TeamName = string(team)
		s.CreatedAt = string(created)
		signups = append(signups, s)
	}
	return signups, rows.Err()
}
