package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
)

// TaskRepo provides CRUD for task rows within one known family.  Task
// rows live in the family's events{N} table and are distinguished from
// the event metadata row by a non-empty title.  Deleting a task relies
// on the cascade constraints to take its time slots and signups with it.
type TaskRepo struct {
	db *database.DB
}

// NewTaskRepo returns a TaskRepo bound to the given database.
func NewTaskRepo(db *database.DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = `id, title, short_description, description, date,
	needed_volunteers, address, is_hidden, sort_order`

const taskFilter = `title IS NOT NULL AND title <> ''`

func scanTask(row *sql.Row, n int) (*model.Task, error) {
	var t model.Task
	var short, desc, date, addr text
	var needed sql.NullInt64
	if err := row.Scan(&t.ID, &t.Title, &short, &desc, &date, &needed, &addr,
		&t.IsHidden, &t.SortOrder); err != nil {
		return nil, err
	}
	t.Family = n
	t.ShortDescription = string(short)
	t.Description = string(desc)
	t.Date = string(date)
	t.Address = string(addr)
	t.NeededVolunteers = int(needed.Int64)
	return &t, nil
}

// Create inserts a task row into family n, assigning a fresh id.
func (r *TaskRepo) Create(ctx context.Context, n int, t *model.Task) error {
	t.ID = uuid.NewString()
	t.Family = n
	q := fmt.Sprintf(`INSERT INTO %s (id, title, short_description, description, date,
		needed_volunteers, address, is_hidden, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, family.ForSuffix(n).Events())
	_, err := r.db.ExecContext(ctx, q, t.ID, t.Title, t.ShortDescription, t.Description,
		t.Date, t.NeededVolunteers, t.Address, t.IsHidden, t.SortOrder)
	return err
}

// GetByID returns the task with the given id from family n, or
// ErrTaskNotFound.
func (r *TaskRepo) GetByID(ctx context.Context, n int, id string) (*model.Task, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND %s`,
		taskColumns, family.ForSuffix(n).Events(), taskFilter)
	t, err := scanTask(r.db.QueryRowContext(ctx, q, id), n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// ListByFamily returns family n's tasks in display order.
func (r *TaskRepo) ListByFamily(ctx context.Context, n int) ([]model.Task, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY sort_order, date`,
		taskColumns, family.ForSuffix(n).Events(), taskFilter)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var short, desc, date, addr text
		var needed sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &short, &desc, &date, &needed, &addr,
			&t.IsHidden, &t.SortOrder); err != nil {
			return nil, err
		}
		t.Family = n
		t.ShortDescription = string(short)
		t.Description = string(desc)
		t.Date = string(date)
		t.Address = string(addr)
		t.NeededVolunteers = int(needed.Int64)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update rewrites a task's fields in place within its family.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	q := fmt.Sprintf(`UPDATE %s SET title = ?, short_description = ?, description = ?,
		date = ?, needed_volunteers = ?, address = ? WHERE id = ? AND %s`,
		family.ForSuffix(t.Family).Events(), taskFilter)
	res, err := r.db.ExecContext(ctx, q, t.Title, t.ShortDescription, t.Description,
		t.Date, t.NeededVolunteers, t.Address, t.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task row; the family's cascade constraints remove its
// time slots and all signups referencing them.
func (r *TaskRepo) Delete(ctx context.Context, n int, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND %s`, family.ForSuffix(n).Events(), taskFilter)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateOrder persists a drag-and-drop reordering: ids are the family's
// task ids in their new display order.  The writes run in one
// transaction so a failed reorder leaves the previous order intact.
func (r *TaskRepo) UpdateOrder(ctx context.Context, n int, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	table := family.ForSuffix(n).Events()
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
	for i, id := range ids {
		q := fmt.Sprintf(`UPDATE %s SET sort_order = ? WHERE id = ? AND %s`, table, taskFilter)
		if _, err := tx.ExecContext(ctx, q, i, id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
