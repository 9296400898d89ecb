package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/vestbyenif/volunteer-api/internal/database"
	"github.com/vestbyenif/volunteer-api/internal/family"
	"github.com/vestbyenif/volunteer-api/internal/model"
)

// newTestDB opens a fresh in-memory SQLite database.  The dialect pins
// the pool to a single connection, so the database lives exactly as long
// as the test.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.OpenWith(database.NewSQLiteDialect(), database.DialectConfig{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// provisionFamily creates family n's table trio directly through the
// dialect, bypassing the provisioner, for tests that need a known layout.
func provisionFamily(t *testing.T, db *database.DB, n int) {
	t.Helper()
	for _, stmt := range db.Dialect.CreateFamilyStatements(family.ForSuffix(n)) {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("provision family %d: %v", n, err)
		}
	}
}

// mustCreateTask inserts a task into family n and returns it.
func mustCreateTask(t *testing.T, db *database.DB, n int, title string) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:            title,
		ShortDescription: "short",
		Description:      "long",
		Date:             "2025-05-17",
		NeededVolunteers: 10,
		Address:          "Idrettsveien 1",
	}
	if err := NewTaskRepo(db).Create(context.Background(), n, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// mustCreateSlot inserts a time slot for the task and returns it.
func mustCreateSlot(t *testing.T, db *database.DB, n int, taskID string, max int) *model.TimeSlot {
	t.Helper()
	slot := &model.TimeSlot{
		TaskID:        taskID,
		StartTime:     "10:00",
		EndTime:       "12:00",
		MaxVolunteers: max,
	}
	if err := NewTimeSlotRepo(db).Create(context.Background(), n, slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}
	return slot
}

// countRows counts rows in an arbitrary table.
func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()
	var count int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	if err := db.QueryRowContext(context.Background(), q).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}
