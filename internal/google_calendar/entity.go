package googlecalendar

import (
	"github.com/google/uuid"

	util "github.com/Salsabil-210/comhabits/internal/utils"
)

// CalendarHabit is the slice of a habit the calendar needs: its materialized
// occurrences and the event that mirrors them, if any.
type CalendarHabit struct {
	ID          uuid.UUID
	Name        string
	Description string
	Occurrences []util.Date
	EventID     string
}
