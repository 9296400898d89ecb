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
)

// Migrator moves a task, its time slots and their signups from one event
// family's tables to another's, assigning fresh ids in the destination
// and remapping the slot/task references on every signup.
//
// The seven steps run in protocol order inside one transaction: all
// destination inserts strictly precede all source deletes, so even if
// the transaction guarantee were ever weakened, an interruption would
// duplicate rows rather than lose a volunteer's registration.  On
// failure the transaction rolls back and the returned MigrationError
// names the step so the administrator knows what state a retry redoes.
type Migrator struct {
	db *database.DB
}

// NewMigrator returns a Migrator bound to the given database.
func NewMigrator(db *database.DB) *Migrator { return &Migrator{db: db} }

// MigrateTask moves the task with the given id from the source family to
// the destination family and returns the task's new id.  Both families
// must already be provisioned.  Migrating a task onto its own family is
// rejected, as the slug-free task copy would otherwise duplicate.
func (m *Migrator) MigrateTask(ctx context.Context, taskID string, source, dest int) (string, error) {
	if source == dest {
		return "", fmt.Errorf("source and destination family are both %d", source)
	}
	src := family.ForSuffix(source)
	dst := family.ForSuffix(dest)

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Load the source task first; a missing task is a lookup failure,
	// not a migration step failure.
	taskQ := fmt.Sprintf(`SELECT title, short_description, description, date,
		needed_volunteers, address, is_hidden, sort_order FROM %s WHERE id = ? AND %s`,
		src.Events(), taskFilter)
	var title, short, desc, date, addr text
	var needed sql.NullInt64
	var hidden bool
	var order int64
	err = tx.QueryRowContext(ctx, taskQ, taskID).Scan(&title, &short, &desc, &date,
		&needed, &addr, &hidden, &order)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTaskNotFound
	}
	if err != nil {
		return "", err
	}

	// Step 1: insert the task into the destination with a fresh id.
	newTaskID := uuid.NewString()
	insTask := fmt.Sprintf(`INSERT INTO %s (id, title, short_description, description, date,
		needed_volunteers, address, is_hidden, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dst.Events())
	if _, err := tx.ExecContext(ctx, insTask, newTaskID, string(title), string(short),
		string(desc), string(date), needed, string(addr), hidden, order); err != nil {
		return "", &MigrationError{Step: MigrateInsertTask, Err: err}
	}

	// Step 2: copy the time slots, recording the old->new id mapping
	// the signup rewrite needs.
	type slotRow struct {
		id, start, end string
		max, current   int
	}
	slotQ := fmt.Sprintf(`SELECT id, start_time, end_time, max_volunteers, current_volunteers
		FROM %s WHERE task_id = ?`, src.TimeSlots())
	rows, err := tx.QueryContext(ctx, slotQ, taskID)
	if err != nil {
		return "", &MigrationError{Step: MigrateInsertSlots, Err: err}
	}
	var slots []slotRow
	for rows.Next() {
		var s slotRow
		var start, end text
		if err := rows.Scan(&s.id, &start, &end, &s.max, &s.current); err != nil {
			rows.Close()
			return "", &MigrationError{Step: MigrateInsertSlots, Err: err}
		}
		s.start, s.end = string(start), string(end)
		slots = append(slots, s)
	}
	if err := rows.Close(); err != nil {
		return "", &MigrationError{Step: MigrateInsertSlots, Err: err}
	}

	slotIDMap := make(map[string]string, len(slots))
	insSlot := fmt.Sprintf(`INSERT INTO %s (id, task_id, start_time, end_time,
		max_volunteers, current_volunteers) VALUES (?, ?, ?, ?, ?, ?)`, dst.TimeSlots())
	for _, s := range slots {
		newID := uuid.NewString()
		if _, err := tx.ExecContext(ctx, insSlot, newID, newTaskID, s.start, s.end, s.max, s.current); err != nil {
			return "", &MigrationError{Step: MigrateInsertSlots, Err: err}
		}
		slotIDMap[s.id] = newID
	}

	// Step 3: fetch the signups hanging off the source slots.
	type signupRow struct {
		slotID, name, email, phone, comment, child, team string
		isParent                                         bool
	}
	var signups []signupRow
	if len(slots) > 0 {
		placeholders := make([]string, len(slots))
		args := make([]any, len(slots))
		for i, s := range slots {
			placeholders[i] = "?"
			args[i] = s.id
		}
		sigQ := fmt.Sprintf(`SELECT time_slot_id, name, email, phone, comment, is_parent,
			child_name, team_name FROM %s WHERE time_slot_id IN (%s)`,
			src.Signups(), strings.Join(placeholders, ","))
		srows, err := tx.QueryContext(ctx, sigQ, args...)
		if err != nil {
			return "", &MigrationError{Step: MigrateFetchSignups, Err: err}
		}
		for srows.Next() {
			var g signupRow
			var slotID, email, phone, comment, child, team text
			if err := srows.Scan(&slotID, &g.name, &email, &phone, &comment,
				&g.isParent, &child, &team); err != nil {
				srows.Close()
				return "", &MigrationError{Step: MigrateFetchSignups, Err: err}
			}
			g.slotID = string(slotID)
			g.email, g.phone, g.comment = string(email), string(phone), string(comment)
			g.child, g.team = string(child), string(team)
			signups = append(signups, g)
		}
		if err := srows.Close(); err != nil {
			return "", &MigrationError{Step: MigrateFetchSignups, Err: err}
		}
	}

	// Step 4: insert the signups into the destination, re-pointed at the
	// new slot and task ids.
	insSignup := fmt.Sprintf(`INSERT INTO %s (id, time_slot_id, task_id, name, email, phone,
		comment, is_parent, child_name, team_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dst.Signups())
	for _, g := range signups {
		newSlotID, ok := slotIDMap[g.slotID]
		if !ok {
			return "", &MigrationError{Step: MigrateInsertSignups,
				Err: fmt.Errorf("signup references slot %s outside the task", g.slotID)}
		}
		if _, err := tx.ExecContext(ctx, insSignup, uuid.NewString(), newSlotID, newTaskID,
			g.name, g.email, g.phone, g.comment, g.isParent, g.child, g.team); err != nil {
			return "", &MigrationError{Step: MigrateInsertSignups, Err: err}
		}
	}

	// Step 5: delete the source signups.
	delSignups := fmt.Sprintf(`DELETE FROM %s WHERE task_id = ?`, src.Signups())
	if _, err := tx.ExecContext(ctx, delSignups, taskID); err != nil {
		return "", &MigrationError{Step: MigrateDeleteSignups, Err: err}
	}

	// Step 6: delete the source time slots.
	delSlots := fmt.Sprintf(`DELETE FROM %s WHERE task_id = ?`, src.TimeSlots())
	if _, err := tx.ExecContext(ctx, delSlots, taskID); err != nil {
		return "", &MigrationError{Step: MigrateDeleteSlots, Err: err}
	}

	// Step 7: delete the source task row.
	delTask := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, src.Events())
	if _, err := tx.ExecContext(ctx, delTask, taskID); err != nil {
		return "", &MigrationError{Step: MigrateDeleteTask, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	committed = true
	return newTaskID, nil
}
