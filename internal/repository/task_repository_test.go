package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vestbyenif/volunteer-api/internal/model"
)

func TestTaskCRUD(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	tasks := NewTaskRepo(db)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	if task.ID == "" {
		t.Fatal("task id not assigned")
	}

	got, err := tasks.GetByID(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Kiosk duty" || got.NeededVolunteers != 10 {
		t.Fatalf("GetByID = %+v", got)
	}

	got.Title = "Kiosk duty (morning)"
	got.NeededVolunteers = 4
	if err := tasks.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := tasks.GetByID(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if again.Title != "Kiosk duty (morning)" || again.NeededVolunteers != 4 {
		t.Fatalf("update not applied: %+v", again)
	}

	if err := tasks.Delete(ctx, 1, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tasks.GetByID(ctx, 1, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("GetByID after delete = %v, want ErrTaskNotFound", err)
	}
	if err := tasks.Delete(ctx, 1, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second Delete = %v, want ErrTaskNotFound", err)
	}
}

// The event metadata row shares the table but must stay invisible to
// task queries.
func TestTasksExcludeEventRow(t *testing.T) {
	db := newTestDB(t)
	reg := NewFamilyRegistry(db)
	families := NewFamilyRepo(db, reg)
	ctx := context.Background()

	if _, err := families.Create(ctx, validEvent("Spring Show")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustCreateTask(t, db, 1, "Kiosk duty")

	list, err := NewTaskRepo(db).ListByFamily(ctx, 1)
	if err != nil {
		t.Fatalf("ListByFamily: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Kiosk duty" {
		t.Fatalf("ListByFamily = %+v, want only the task row", list)
	}
}

// Deleting a task takes its slots and signups with it via cascade.
func TestDeleteTaskCascades(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slot := mustCreateSlot(t, db, 1, task.ID, 5)
	signups := NewSignupRepo(db)
	if err := signups.Create(ctx, 1, &model.Signup{
		TimeSlotID: slot.ID, TaskID: task.ID, Name: "Kari",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := NewTaskRepo(db).Delete(ctx, 1, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := countRows(t, db, "timeslots1"); got != 0 {
		t.Fatalf("timeslots1 rows after delete = %d, want 0", got)
	}
	if got := countRows(t, db, "signups1"); got != 0 {
		t.Fatalf("signups1 rows after delete = %d, want 0", got)
	}
}

func TestUpdateOrder(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	tasks := NewTaskRepo(db)
	ctx := context.Background()

	a := mustCreateTask(t, db, 1, "A")
	b := mustCreateTask(t, db, 1, "B")
	c := mustCreateTask(t, db, 1, "C")

	if err := tasks.UpdateOrder(ctx, 1, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	list, err := tasks.ListByFamily(ctx, 1)
	if err != nil {
		t.Fatalf("ListByFamily: %v", err)
	}
	want := []string{"C", "A", "B"}
	for i, title := range want {
		if list[i].Title != title {
			t.Fatalf("order after UpdateOrder = [%s %s %s], want %v",
				list[0].Title, list[1].Title, list[2].Title, want)
		}
	}
}

func TestSlotValidation(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slots := NewTimeSlotRepo(db)
	ctx := context.Background()

	cases := []struct {
		field string
		slot  model.TimeSlot
	}{
		{"start_time", model.TimeSlot{TaskID: task.ID, EndTime: "12:00", MaxVolunteers: 3}},
		{"end_time", model.TimeSlot{TaskID: task.ID, StartTime: "10:00", MaxVolunteers: 3}},
		{"max_volunteers", model.TimeSlot{TaskID: task.ID, StartTime: "10:00", EndTime: "12:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			s := tc.slot
			err := slots.Create(ctx, 1, &s)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("Create = %v, want ValidationError on %s", err, tc.field)
			}
		})
	}
}

func TestSlotUpdateKeepsCounter(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slot := mustCreateSlot(t, db, 1, task.ID, 3)
	if err := NewSignupRepo(db).Create(ctx, 1, &model.Signup{
		TimeSlotID: slot.ID, TaskID: task.ID, Name: "Kari",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// Shrink capacity below the counter; the slot just stops accepting.
	slot.MaxVolunteers = 1
	if err := NewTimeSlotRepo(db).Update(ctx, 1, slot); err != nil {
		t.Fatalf("Update: %v", err)
	}
	list, err := NewTimeSlotRepo(db).ListByTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if len(list) != 1 || list[0].CurrentVolunteers != 1 || list[0].MaxVolunteers != 1 {
		t.Fatalf("slot after update = %+v", list)
	}
	err = NewSignupRepo(db).Create(ctx, 1, &model.Signup{
		TimeSlotID: slot.ID, TaskID: task.ID, Name: "Ola",
	})
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("signup on shrunk slot = %v, want ErrSlotFull", err)
	}
}
