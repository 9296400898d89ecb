package repository

import (
	"fmt"
	"time"
)

// text scans nullable text-ish columns uniformly across the supported
// backends.  NULL becomes the empty string; MySQL DATE/TIME columns come
// back as []byte or time.Time depending on parseTime, both of which are
// normalized here.
type text string

// Scan implements sql.Scanner.
func (t *text) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = text(v)
	case []byte:
		*t = text(v)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			*t = text(v.Format("2006-01-02"))
		} else {
			*t = text(v.Format("2006-01-02 15:04:05"))
		}
	default:
		return fmt.Errorf("cannot scan %T into text column", src)
	}
	return nil
}
