package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vestbyenif/volunteer-api/internal/model"
)

func TestMigrateRejectsSameFamily(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	task := mustCreateTask(t, db, 1, "Kiosk duty")

	if _, err := NewMigrator(db).MigrateTask(context.Background(), task.ID, 1, 1); err == nil {
		t.Fatal("expected error migrating a task onto its own family")
	}
}

func TestMigrateMissingTask(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	provisionFamily(t, db, 2)

	_, err := NewMigrator(db).MigrateTask(context.Background(), "no-such-task", 1, 2)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("got %v, want ErrTaskNotFound", err)
	}
}

// Migration conserves everything: the task, each slot with its counter,
// and every signup, re-pointed at the fresh destination ids.  The source
// family ends empty of the task.
func TestMigrateTaskConservesRows(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	provisionFamily(t, db, 2)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slotA := mustCreateSlot(t, db, 1, task.ID, 5)
	slotB := mustCreateSlot(t, db, 1, task.ID, 3)

	signups := NewSignupRepo(db)
	for _, s := range []*model.Signup{
		{TimeSlotID: slotA.ID, TaskID: task.ID, Name: "Kari", Email: "kari@example.org"},
		{TimeSlotID: slotA.ID, TaskID: task.ID, Name: "Ola"},
		{TimeSlotID: slotB.ID, TaskID: task.ID, Name: "Per", TeamName: "G12"},
	} {
		if err := signups.Create(ctx, 1, s); err != nil {
			t.Fatalf("signup %s: %v", s.Name, err)
		}
	}

	newID, err := NewMigrator(db).MigrateTask(ctx, task.ID, 1, 2)
	if err != nil {
		t.Fatalf("MigrateTask: %v", err)
	}
	if newID == task.ID {
		t.Fatal("destination task id must be fresh")
	}

	// Source family holds nothing of the task anymore.
	if _, err := NewTaskRepo(db).GetByID(ctx, 1, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("source task still present: %v", err)
	}
	if got := countRows(t, db, "timeslots1"); got != 0 {
		t.Fatalf("source slots = %d, want 0", got)
	}
	if got := countRows(t, db, "signups1"); got != 0 {
		t.Fatalf("source signups = %d, want 0", got)
	}

	// Destination carries the task with its fields intact.
	moved, err := NewTaskRepo(db).GetByID(ctx, 2, newID)
	if err != nil {
		t.Fatalf("destination task: %v", err)
	}
	if moved.Title != "Kiosk duty" || moved.NeededVolunteers != 10 {
		t.Fatalf("task fields lost in migration: %+v", moved)
	}

	// Both slots arrived with their counters preserved.
	slots, err := NewTimeSlotRepo(db).ListByTask(ctx, 2, newID)
	if err != nil {
		t.Fatalf("destination slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("destination slot count = %d, want 2", len(slots))
	}
	counters := 0
	slotIDs := make(map[string]bool, len(slots))
	for _, s := range slots {
		if s.ID == slotA.ID || s.ID == slotB.ID {
			t.Fatalf("slot id %s not reassigned", s.ID)
		}
		slotIDs[s.ID] = true
		counters += s.CurrentVolunteers
	}
	if counters != 3 {
		t.Fatalf("sum of current_volunteers = %d, want 3", counters)
	}

	// All three signups arrived and reference the new slot and task ids.
	list, err := signups.ListByTask(ctx, 2, newID)
	if err != nil {
		t.Fatalf("destination signups: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("destination signup count = %d, want 3", len(list))
	}
	for _, s := range list {
		if !slotIDs[s.TimeSlotID] {
			t.Fatalf("signup %s references unknown slot %s", s.Name, s.TimeSlotID)
		}
		if s.TaskID != newID {
			t.Fatalf("signup %s references task %s, want %s", s.Name, s.TaskID, newID)
		}
	}
}

// A failed migration rolls back completely and names the step.  Dropping
// the destination signups table makes step 4 fail after steps 1-3 have
// already run inside the transaction.
func TestMigrateRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	provisionFamily(t, db, 2)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slot := mustCreateSlot(t, db, 1, task.ID, 5)
	if err := NewSignupRepo(db).Create(ctx, 1, &model.Signup{
		TimeSlotID: slot.ID, TaskID: task.ID, Name: "Kari",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := db.ExecContext(ctx, `DROP TABLE signups2`); err != nil {
		t.Fatalf("drop destination signups: %v", err)
	}

	_, err := NewMigrator(db).MigrateTask(ctx, task.ID, 1, 2)
	var me *MigrationError
	if !errors.As(err, &me) {
		t.Fatalf("expected MigrationError, got %v", err)
	}
	if me.Step != MigrateInsertSignups {
		t.Fatalf("MigrationError.Step = %d, want %d", me.Step, MigrateInsertSignups)
	}

	// Source intact, destination untouched.
	if _, err := NewTaskRepo(db).GetByID(ctx, 1, task.ID); err != nil {
		t.Fatalf("source task lost after rollback: %v", err)
	}
	if got := countRows(t, db, "signups1"); got != 1 {
		t.Fatalf("source signups = %d, want 1", got)
	}
	if got := countRows(t, db, "events2"); got != 0 {
		t.Fatalf("destination task rows = %d, want 0 after rollback", got)
	}
	if got := countRows(t, db, "timeslots2"); got != 0 {
		t.Fatalf("destination slots = %d, want 0 after rollback", got)
	}
}
