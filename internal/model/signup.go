package model

// Signup is a volunteer's registration against one time slot.  Signups
// are inserted once and never updated; they disappear when their slot,
// task or family is deleted.
//
// Fields:
//
//	ID         – primary key (UUID string).
//	TimeSlotID – slot the volunteer registered for.
//	TaskID     – owning task, duplicated for per-task counting.
//	Name       – volunteer name.
//	Email      – contact email.
//	Phone      – contact phone.
//	Comment    – free-form note from the volunteer.
//	IsParent   – set when a parent signs up on behalf of a child.
//	ChildName  – the child's name when IsParent is set.
//	TeamName   – the volunteer's team, if any.
//	CreatedAt  – insertion timestamp as stored by the database.
type Signup struct {
	ID         string `json:"id"`
	TimeSlotID string `json:"time_slot_id"`
	TaskID     string `json:"task_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Comment    string `json:"comment"`
	IsParent   bool   `json:"is_parent"`
	ChildName  string `json:"child_name"`
	TeamName   string `json:"team_name"`
	CreatedAt  string `json:"created_at"`
}
