package model

// Task is a unit of volunteer work within an event family, divided into
// time slots.  Task rows live in the family's events{N} table next to
// the event metadata row and are distinguished by a non-empty title.
//
// Fields:
//
//	ID               – primary key (UUID string).
//	Family           – suffix of the table trio the row lives in.
//	Title            – task heading.
//	ShortDescription – short text for the task list.
//	Description      – full text for the task page.
//	Date             – day the task runs (ISO date string).
//	NeededVolunteers – total volunteers the task calls for.
//	Address          – where to show up.
//	IsHidden         – hidden tasks are only visible to administrators.
//	SortOrder        – manual display ordering within the event.
type Task struct {
	ID               string `json:"id"`
	Family           int    `json:"family"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Date             string `json:"date"`
	NeededVolunteers int    `json:"needed_volunteers"`
	Address          string `json:"address"`
	IsHidden         bool   `json:"is_hidden"`
	SortOrder        int64  `json:"sort_order"`
}
