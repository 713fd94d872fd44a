package domain

import "time"

// WaitlistStatus represents the lifecycle state of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "Waiting"
	WaitlistNotified  WaitlistStatus = "Notified"
	WaitlistConverted WaitlistStatus = "Converted"
	WaitlistExpired   WaitlistStatus = "Expired"
	WaitlistCancelled WaitlistStatus = "Cancelled"
)

// ActiveWaitlistStatuses статусы, при которых гость считается стоящим в
// очереди; используются при проверке дублей
var ActiveWaitlistStatuses = []WaitlistStatus{
	WaitlistWaiting,
	WaitlistNotified,
}

// ValidWaitlistStatuses все допустимые значения статуса записи
var ValidWaitlistStatuses = []WaitlistStatus{
	WaitlistWaiting,
	WaitlistNotified,
	WaitlistConverted,
	WaitlistExpired,
	WaitlistCancelled,
}

// ParseWaitlistStatus валидирует строковое представление статуса
func ParseWaitlistStatus(s string) (WaitlistStatus, bool) {
	candidate := WaitlistStatus(s)
	for _, valid := range ValidWaitlistStatuses {
		if candidate == valid {
			return candidate, true
		}
	}
	return "", false
}

// TimeFlexibility насколько гость гибок по времени
type TimeFlexibility string

const (
	FlexibilityFlexible  TimeFlexibility = "Flexible"
	FlexibilityMorning   TimeFlexibility = "Morning Only"
	FlexibilityAfternoon TimeFlexibility = "Afternoon Only"
	FlexibilityExact     TimeFlexibility = "Exact Time"
)

// Источники появления записи в очереди
const (
	WaitlistSourceManual   = "manual"
	WaitlistSourceEmailBot = "email_bot"
)

// Границы приоритета записи
const (
	MinWaitlistPriority     = 1
	MaxWaitlistPriority     = 10
	DefaultWaitlistPriority = 5
)

// WaitlistEntry represents a request for a date with no available slot,
// held for later matching against openings
type WaitlistEntry struct {
	ID         int64
	WaitlistID string // внешний идентификатор вида "WL-20240315093000-a1b2c3d4"

	GuestEmail string
	GuestName  string
	Club       string

	RequestedDate   time.Time
	PreferredTime   string // "10:00 AM" или "Flexible"
	TimeFlexibility TimeFlexibility
	Players         int
	GolfCourse      string

	Status   WaitlistStatus
	Priority int // 1-10, больше - важнее
	Notes    string

	NotificationSent   bool
	NotificationSentAt *time.Time

	Source                 string
	OptInConfirmed         bool
	OriginalBookingRequest string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the entry still occupies a place in the queue
func (e *WaitlistEntry) IsActive() bool {
	return e.Status == WaitlistWaiting || e.Status == WaitlistNotified
}

// WaitlistUpdate частичное обновление записи; nil-поля не трогаются
type WaitlistUpdate struct {
	Status           *WaitlistStatus
	NotificationSent *bool
	Notes            *string
	Priority         *int
}

// IsEmpty returns true if the update carries no changes
func (u *WaitlistUpdate) IsEmpty() bool {
	return u.Status == nil && u.NotificationSent == nil && u.Notes == nil && u.Priority == nil
}
