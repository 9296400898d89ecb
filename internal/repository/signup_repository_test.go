package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/vestbyenif/volunteer-api/internal/model"
)

func TestSignupValidation(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	signups := NewSignupRepo(db)
	ctx := context.Background()

	err := signups.Create(ctx, 1, &model.Signup{TimeSlotID: "some-slot"})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("missing name: got %v", err)
	}
	err = signups.Create(ctx, 1, &model.Signup{Name: "Kari"})
	if !errors.As(err, &ve) || ve.Field != "time_slot_id" {
		t.Fatalf("missing slot id: got %v", err)
	}
}

func TestSignupMissingSlot(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)

	err := NewSignupRepo(db).Create(context.Background(), 1, &model.Signup{
		TimeSlotID: "no-such-slot", Name: "Kari",
	})
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("got %v, want ErrSlotNotFound", err)
	}
}

// The conditional increment admits exactly as many signups as the slot
// has places; the one contending for a full slot gets ErrSlotFull and no
// row is written for it.
func TestSignupCapacity(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	signups := NewSignupRepo(db)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slot := mustCreateSlot(t, db, 1, task.ID, 2)

	for _, name := range []string{"Kari", "Ola"} {
		if err := signups.Create(ctx, 1, &model.Signup{
			TimeSlotID: slot.ID, TaskID: task.ID, Name: name,
		}); err != nil {
			t.Fatalf("signup %s: %v", name, err)
		}
	}

	err := signups.Create(ctx, 1, &model.Signup{
		TimeSlotID: slot.ID, TaskID: task.ID, Name: "Per",
	})
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("third signup = %v, want ErrSlotFull", err)
	}

	// Counter and rows stay consistent: the rejected signup left nothing.
	list, err := NewTimeSlotRepo(db).ListByTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if list[0].CurrentVolunteers != 2 {
		t.Fatalf("current_volunteers = %d, want 2", list[0].CurrentVolunteers)
	}
	if got := countRows(t, db, "signups1"); got != 2 {
		t.Fatalf("signup rows = %d, want 2", got)
	}
}

// Two signups racing for the last place: the conditional increment
// guarantees exactly one wins and one gets ErrSlotFull, whichever order
// the store runs them in.  (SQLite's single test connection serializes
// the transactions; on MySQL/Postgres the row lock taken by the UPDATE
// does the same.)
func TestSignupLastPlaceRace(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	signups := NewSignupRepo(db)

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slot := mustCreateSlot(t, db, 1, task.ID, 1)

	errs := make(chan error, 2)
	for _, name := range []string{"Kari", "Ola"} {
		go func(name string) {
			errs <- signups.Create(context.Background(), 1, &model.Signup{
				TimeSlotID: slot.ID, TaskID: task.ID, Name: name,
			})
		}(name)
	}

	var won, full int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotFull):
			full++
		default:
			t.Fatalf("unexpected signup error: %v", err)
		}
	}
	if won != 1 || full != 1 {
		t.Fatalf("won=%d full=%d, want exactly one of each", won, full)
	}

	list, err := NewTimeSlotRepo(db).ListByTask(context.Background(), 1, task.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if list[0].CurrentVolunteers != 1 {
		t.Fatalf("current_volunteers = %d, want 1", list[0].CurrentVolunteers)
	}
	if got := countRows(t, db, "signups1"); got != 1 {
		t.Fatalf("signup rows = %d, want 1", got)
	}
}

func TestListAndCountByTask(t *testing.T) {
	db := newTestDB(t)
	provisionFamily(t, db, 1)
	signups := NewSignupRepo(db)
	ctx := context.Background()

	task := mustCreateTask(t, db, 1, "Kiosk duty")
	slotA := mustCreateSlot(t, db, 1, task.ID, 5)
	slotB := mustCreateSlot(t, db, 1, task.ID, 5)

	for _, s := range []*model.Signup{
		{TimeSlotID: slotA.ID, TaskID: task.ID, Name: "Kari", Email: "kari@example.org", TeamName: "G12"},
		{TimeSlotID: slotA.ID, TaskID: task.ID, Name: "Ola", IsParent: true, ChildName: "Nora"},
		{TimeSlotID: slotB.ID, TaskID: task.ID, Name: "Per", Phone: "99887766"},
	} {
		if err := signups.Create(ctx, 1, s); err != nil {
			t.Fatalf("signup %s: %v", s.Name, err)
		}
	}

	count, err := signups.CountByTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("CountByTask: %v", err)
	}
	if count != 3 {
		t.Fatalf("CountByTask = %d, want 3", count)
	}

	list, err := signups.ListByTask(ctx, 1, task.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("ListByTask returned %d rows, want 3", len(list))
	}
	byName := make(map[string]model.Signup, len(list))
	for _, s := range list {
		byName[s.Name] = s
	}
	if s := byName["Ola"]; !s.IsParent || s.ChildName != "Nora" {
		t.Fatalf("parent signup round trip failed: %+v", s)
	}
	if s := byName["Kari"]; s.Email != "kari@example.org" || s.TeamName != "G12" {
		t.Fatalf("contact fields round trip failed: %+v", s)
	}
}
