package domain

import "strconv"

// Default configuration values
const (
	// DefaultSlotDurationMinutes применяется, когда длительность приёма
	// у врача не задана или некорректна (<= 0)
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MaxRemarksLength = 500
)

// Date format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Appointment business id scheme: "A" + (3000 + sequence)
const (
	AppointmentCodePrefix = "A"
	AppointmentCodeBase   = 3000
)

func formatStorageID(id int64) string {
	return strconv.FormatInt(id, 10)
}
