package models

import (
	"time"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// Request модели

// AddEntryRequest запрос постановки гостя в очередь ожидания
type AddEntryRequest struct {
	GuestEmail string `json:"guestEmail"`
	GuestName  string `json:"guestName"`
	Club       string `json:"club"`

	RequestedDate   string `json:"requestedDate"` // "2025-10-15"
	PreferredTime   string `json:"preferredTime"`
	TimeFlexibility string `json:"timeFlexibility"`
	Players         int    `json:"players"`
	GolfCourse      string `json:"golfCourse"`

	Priority int    `json:"priority"`
	Notes    string `json:"notes"`

	Source                 string `json:"source"`
	OptInConfirmed         *bool  `json:"optInConfirmed"`
	OriginalBookingRequest string `json:"originalBookingRequest"`
}

// UpdateEntryRequest частичное обновление записи очереди
type UpdateEntryRequest struct {
	Status           *string `json:"status,omitempty"`
	NotificationSent *bool   `json:"notificationSent,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Priority         *int    `json:"priority,omitempty"`
}

// Response модели

// EntryResponse ответ с данными записи очереди
type EntryResponse struct {
	ID         int64  `json:"id"`
	WaitlistID string `json:"waitlistId"`

	GuestEmail string `json:"guestEmail"`
	GuestName  string `json:"guestName,omitempty"`
	Club       string `json:"club"`

	RequestedDate   string `json:"requestedDate"`
	PreferredTime   string `json:"preferredTime"`
	TimeFlexibility string `json:"timeFlexibility"`
	Players         int    `json:"players"`
	GolfCourse      string `json:"golfCourse,omitempty"`

	Status   string `json:"status"`
	Priority int    `json:"priority"`
	Notes    string `json:"notes,omitempty"`

	NotificationSent   bool       `json:"notificationSent"`
	NotificationSentAt *time.Time `json:"notificationSentAt,omitempty"`

	Source                 string `json:"source"`
	OptInConfirmed         bool   `json:"optInConfirmed"`
	OriginalBookingRequest string `json:"originalBookingRequest,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryListResponse ответ со списком записей
type EntryListResponse struct {
	Count   int             `json:"count"`
	Entries []EntryResponse `json:"entries"`
}

// MatchesResponse ответ подбора ожидающих под освободившийся слот.
// AvailableTime не участвует в фильтрации и возвращается как есть.
type MatchesResponse struct {
	AvailableDate string          `json:"availableDate"`
	AvailableTime string          `json:"availableTime,omitempty"`
	Count         int             `json:"matchesFound"`
	Matches       []EntryResponse `json:"matches"`
}

// CheckResponse ответ проверки наличия гостя в очереди. Возвращает все
// записи гостя независимо от статуса; onWaitlist выводится из их числа.
type CheckResponse struct {
	OnWaitlist bool            `json:"onWaitlist"`
	Count      int             `json:"count"`
	Entries    []EntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	return &EntryResponse{
		ID:                     e.ID,
		WaitlistID:             e.WaitlistID,
		GuestEmail:             e.GuestEmail,
		GuestName:              e.GuestName,
		Club:                   e.Club,
		RequestedDate:          e.RequestedDate.Format(domain.DateFormat),
		PreferredTime:          e.PreferredTime,
		TimeFlexibility:        string(e.TimeFlexibility),
		Players:                e.Players,
		GolfCourse:             e.GolfCourse,
		Status:                 string(e.Status),
		Priority:               e.Priority,
		Notes:                  e.Notes,
		NotificationSent:       e.NotificationSent,
		NotificationSentAt:     e.NotificationSentAt,
		Source:                 e.Source,
		OptInConfirmed:         e.OptInConfirmed,
		OriginalBookingRequest: e.OriginalBookingRequest,
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitlistEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Count:   len(entries),
		Entries: make([]EntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		if converted := FromDomainEntry(e); converted != nil {
			resp.Entries = append(resp.Entries, *converted)
		}
	}

	return resp
}
