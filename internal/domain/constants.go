package domain

// DateFormat формат дат в API и в базе (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Business validation constants
const (
	MinPlayers     = 1
	MaxPlayers     = 8 // два флайта
	MaxNoteLength  = 10000
	MaxEmailLength = 255
	MaxNameLength  = 255
)

// ActiveBookingStatuses статусы, отображаемые в рабочей воронке по умолчанию
var ActiveBookingStatuses = []BookingStatus{
	StatusInquiry,
	StatusRequested,
	StatusConfirmed,
	StatusBooked,
	StatusPending,
}
