package model

// Event is the metadata row of an event family.  It shares the family's
// events{N} table with the task rows; the event row is the one carrying
// a friendly name and slug.
//
// Fields:
//
//	ID              – primary key (UUID string).
//	Family          – suffix of the table trio the row lives in.
//	FriendlyName    – display name shown on cards and headings.
//	Slug            – URL-safe handle derived from FriendlyName; unique.
//	EventDate       – day the event takes place (ISO date string).
//	ImageURL        – reference to an already-uploaded image.
//	Description     – short text for listings.
//	LongDescription – full text for the detail page.
//	Address         – where the event takes place.
//	IsHidden        – hidden events are only visible to administrators.
//	SortOrder       – manual display ordering.
type Event struct {
	ID              string `json:"id"`
	Family          int    `json:"family"`
	FriendlyName    string `json:"friendly_name"`
	Slug            string `json:"slug"`
	EventDate       string `json:"event_date"`
	ImageURL        string `json:"image_url"`
	Description     string `json:"event_description"`
	LongDescription string `json:"event_longdescription"`
	Address         string `json:"address"`
	IsHidden        bool   `json:"is_hidden"`
	SortOrder       int64  `json:"sort_order"`
}
