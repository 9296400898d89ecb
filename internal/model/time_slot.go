package model

import "strings"

// TempIDPrefix marks a time slot composed in the admin UI that has not
// been persisted yet.  Temporary slots only exist in client state; they
// are resolved to real rows when the owning task is saved.
const TempIDPrefix = "temp-"

// TimeSlot is a bounded time window on a task with a volunteer capacity.
//
// Fields:
//
//	ID                – primary key (UUID string), or a temp- placeholder
//	                    for slots not yet saved.
//	TaskID            – owning task; deleting the task cascades here.
//	StartTime         – slot start ("HH:MM").
//	EndTime           – slot end ("HH:MM").
//	MaxVolunteers     – capacity.
//	CurrentVolunteers – denormalized signup counter, maintained by the
//	                    conditional increment in the signup repository and
//	                    never allowed past MaxVolunteers.
type TimeSlot struct {
	ID                string `json:"id"`
	TaskID            string `json:"task_id"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	MaxVolunteers     int    `json:"max_volunteers"`
	CurrentVolunteers int    `json:"current_volunteers"`
}

// IsTemporary reports whether the slot id is an unsaved placeholder.
func (s TimeSlot) IsTemporary() bool { return strings.HasPrefix(s.ID, TempIDPrefix) }
