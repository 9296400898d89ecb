// Package queue defines message payloads exchanged over the message broker.
package queue

// SignupConfirmedEvent is published after a volunteer registration is
// committed.  It carries enough context for downstream consumers to log
// or notify without querying the primary database.
type SignupConfirmedEvent struct {
	SignupID    string `json:"signup_id"`
	TaskID      string `json:"task_id"`
	TaskTitle   string `json:"task_title"`
	Family      int    `json:"family"`
	TimeSlotID  string `json:"time_slot_id"`
	Volunteer   string `json:"volunteer"`
	TeamName    string `json:"team_name"`
	ConfirmedAt string `json:"confirmed_at"`
}
