package domain

import "time"

// BookingStatus represents the workflow status of a booking request
type BookingStatus string

const (
	StatusInquiry   BookingStatus = "Inquiry"
	StatusRequested BookingStatus = "Requested"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusBooked    BookingStatus = "Booked"
	StatusRejected  BookingStatus = "Rejected"
	StatusCancelled BookingStatus = "Cancelled"

	// StatusPending legacy status written by early versions of the email
	// bot; treated as an alias of Inquiry everywhere
	StatusPending BookingStatus = "Pending"
)

// Booking represents a tee-time booking request in the system
type Booking struct {
	ID        int64
	BookingID string // внешний идентификатор вида "BOOK-0042"

	GuestEmail string
	Club       string
	Date       time.Time // дата игры (без времени)
	TeeTime    *string   // "10:30 AM"; nil, если время еще не извлечено
	Players    int
	Total      float64

	Status BookingStatus
	Note   *string // копия тела письма / заметки персонала

	// Поля, заполняемые email-ботом
	GolfCourses      *string // список полей через запятую
	SelectedTeeTimes *string // полуструктурированный блоб (JSON или "time:HH:MM AM")

	HotelRequired bool
	HotelCheckin  *time.Time
	HotelCheckout *time.Time

	Timestamp           time.Time // момент поступления запроса
	CustomerConfirmedAt *time.Time
	UpdatedAt           *time.Time
	UpdatedBy           *string
	CreatedAt           time.Time
}

// Normalize maps the legacy Pending alias to Inquiry
func (s BookingStatus) Normalize() BookingStatus {
	if s == StatusPending {
		return StatusInquiry
	}
	return s
}

// IsTerminal returns true if no further transitions are allowed from s
func (s BookingStatus) IsTerminal() bool {
	switch s.Normalize() {
	case StatusBooked, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if the booking is still in the working pipeline
func (b *Booking) IsActive() bool {
	switch b.Status.Normalize() {
	case StatusRejected, StatusCancelled:
		return false
	}
	return true
}

// forward описывает линейную цепочку воронки бронирования
var forward = map[BookingStatus]BookingStatus{
	StatusInquiry:   StatusRequested,
	StatusRequested: StatusConfirmed,
	StatusConfirmed: StatusBooked,
}

// CanTransition reports whether a booking may move from one status to
// another. The funnel is linear (Inquiry → Requested → Confirmed → Booked);
// Rejected and Cancelled are reachable from any non-terminal status.
// The historical dashboard allowed arbitrary jumps via a dropdown; the
// transition table closes that gap.
func CanTransition(from, to BookingStatus) bool {
	from = from.Normalize()
	to = to.Normalize()

	if from == to {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusRejected || to == StatusCancelled {
		return true
	}
	return forward[from] == to
}

// ValidBookingStatuses все допустимые значения статуса, включая legacy Pending
var ValidBookingStatuses = []BookingStatus{
	StatusInquiry,
	StatusRequested,
	StatusConfirmed,
	StatusBooked,
	StatusRejected,
	StatusCancelled,
	StatusPending,
}

// ParseBookingStatus валидирует строковое представление статуса
func ParseBookingStatus(s string) (BookingStatus, bool) {
	candidate := BookingStatus(s)
	for _, valid := range ValidBookingStatuses {
		if candidate == valid {
			return candidate, true
		}
	}
	return "", false
}

// BookingsFilter фильтр выборки бронирований клуба
type BookingsFilter struct {
	Club      string          // обязательный параметр
	Statuses  []BookingStatus // пустой список - без фильтрации по статусу
	StartDate *time.Time      // начало периода по дате игры (опционально)
	EndDate   *time.Time      // конец периода (опционально)
}
