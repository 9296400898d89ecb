// Package repository implements data access for event families: the
// catalog registry, the family provisioner, row-level repositories for
// events, tasks, time slots and signups, and the cross-family task
// migrator.  Sentinel errors and the typed step errors defined here let
// handlers map failures onto HTTP responses without string matching.
package repository

import (
	"errors"
	"fmt"
)

// ErrEventNotFound is returned when no event row matches a lookup by id,
// slug or family. Handlers translate this into a 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrTaskNotFound is returned when a task row does not exist in the
// targeted family.
var ErrTaskNotFound = errors.New("task not found")

// ErrSlotNotFound is returned when a time slot does not exist in the
// targeted family.
var ErrSlotNotFound = errors.New("time slot not found")

// ErrFamilyNotFound is returned when an operation targets a family
// suffix with no table trio behind it.
var ErrFamilyNotFound = errors.New("event family not found")

// ErrSlotFull is returned when a signup races for a place the slot no
// longer has.  The conditional counter update makes this check atomic:
// of two signups contending for the last place, exactly one gets it.
var ErrSlotFull = errors.New("time slot is full")

// ErrSlugTaken is returned when an event name derives a slug that
// already exists.  Handlers translate this into a 409 response.
var ErrSlugTaken = errors.New("slug already in use")

// ValidationError reports a required field that was missing or invalid
// before any write was attempted.  No partial state exists when one of
// these is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing or invalid field: " + e.Field
}

// ProvisionError reports which of a family's creation statements failed.
// Tables created by earlier statements are NOT rolled back; the error
// message carries enough identity for an operator to drop strays by hand.
type ProvisionError struct {
	Table string // table whose creation failed
	Err   error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning failed creating %s: %v", e.Table, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// Migration step identifiers, in protocol order.  Inserts into the
// destination family strictly precede deletes from the source family so
// an interrupted migration can duplicate data but never lose it.
const (
	MigrateInsertTask    = 1
	MigrateInsertSlots   = 2
	MigrateFetchSignups  = 3
	MigrateInsertSignups = 4
	MigrateDeleteSignups = 5
	MigrateDeleteSlots   = 6
	MigrateDeleteTask    = 7
)

var migrateStepNames = map[int]string{
	MigrateInsertTask:    "insert task into destination",
	MigrateInsertSlots:   "insert time slots into destination",
	MigrateFetchSignups:  "fetch signups from source",
	MigrateInsertSignups: "insert signups into destination",
	MigrateDeleteSignups: "delete signups from source",
	MigrateDeleteSlots:   "delete time slots from source",
	MigrateDeleteTask:    "delete task from source",
}

// MigrationError reports the step at which a task migration failed.  The
// transaction is rolled back before it is returned, but the step identity
// is kept so administrators know what a retry will redo.
type MigrationError struct {
	Step int
	Err  error
}

func (e *MigrationError) Error() string {
	name := migrateStepNames[e.Step]
	if name == "" {
		name = "unknown step"
	}
	return fmt.Sprintf("migration failed at step %d (%s): %v", e.Step, name, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }
