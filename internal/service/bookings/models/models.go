package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/teetime"
	"github.com/jimbobirecode/teemail-service/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPreset возвращается при неизвестном пресете периода
	ErrInvalidPreset = errors.New("invalid date preset")
)

// Пресеты периода, повторяющие селектор дашборда
const (
	PresetToday       = "today"
	PresetNext7Days   = "next_7_days"
	PresetNext30Days  = "next_30_days"
	PresetNext60Days  = "next_60_days"
	PresetNext90Days  = "next_90_days"
	PresetAllUpcoming = "all_upcoming"
)

var presetSpans = map[string]int{
	PresetToday:       0,
	PresetNext7Days:   7,
	PresetNext30Days:  30,
	PresetNext60Days:  60,
	PresetNext90Days:  90,
	PresetAllUpcoming: 365,
}

// ResolveDatePreset превращает пресет в пару дат от сегодняшнего дня
func ResolveDatePreset(preset string, now time.Time) (time.Time, time.Time, error) {
	span, ok := presetSpans[preset]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPreset, preset)
	}

	start := now.Truncate(24 * time.Hour)
	return start, start.AddDate(0, 0, span), nil
}

// Request модели

// ListBookingsRequest запрос списка бронирований клуба
type ListBookingsRequest struct {
	Club      string
	Statuses  []string
	Preset    string // взаимоисключающ с явным периодом
	StartDate *time.Time
	EndDate   *time.Time
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter(now time.Time) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{Club: r.Club}

	for _, s := range r.Statuses {
		status, ok := domain.ParseBookingStatus(s)
		if !ok {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	// Без явного фильтра показывается рабочая воронка, как в дашборде
	if len(filter.Statuses) == 0 {
		filter.Statuses = append(filter.Statuses, domain.ActiveBookingStatuses...)
	}

	if r.Preset != "" {
		start, end, err := ResolveDatePreset(r.Preset, now)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
		filter.EndDate = &end
		return filter, nil
	}

	filter.StartDate = r.StartDate
	filter.EndDate = r.EndDate
	return filter, nil
}

// UpdateStatusRequest запрос смены статуса бронирования
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	UpdatedBy string `json:"updatedBy"`
}

// UpdateTeeTimeRequest запрос смены tee time
type UpdateTeeTimeRequest struct {
	TeeTime string `json:"teeTime"`
}

// UpdateNoteRequest запрос смены заметки
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	BookingID  string `json:"bookingId"`
	GuestEmail string `json:"guestEmail"`
	Club       string `json:"club"`

	Date    string  `json:"date"`    // "2025-10-15"
	TeeTime string  `json:"teeTime"` // "10:30 AM" или "TBD"
	Players int     `json:"players"`
	Total   float64 `json:"total"`

	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`

	GolfCourses      *string `json:"golfCourses,omitempty"`
	SelectedTeeTimes *string `json:"selectedTeeTimes,omitempty"`

	HotelRequired bool    `json:"hotelRequired"`
	HotelCheckin  *string `json:"hotelCheckin,omitempty"`
	HotelCheckout *string `json:"hotelCheckout,omitempty"`

	Timestamp           time.Time  `json:"timestamp"`
	CustomerConfirmedAt *time.Time `json:"customerConfirmedAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy           *string    `json:"updatedBy,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// EmailResponse ответ с данными входящего письма
type EmailResponse struct {
	ID               int64     `json:"id"`
	MessageID        string    `json:"messageId"`
	FromEmail        string    `json:"fromEmail"`
	ToEmail          string    `json:"toEmail"`
	Subject          *string   `json:"subject,omitempty"`
	BodyText         *string   `json:"bodyText,omitempty"`
	EmailType        string    `json:"emailType"`
	BookingID        *string   `json:"bookingId,omitempty"`
	Processed        bool      `json:"processed"`
	ProcessingStatus *string   `json:"processingStatus,omitempty"`
	ErrorMessage     *string   `json:"errorMessage,omitempty"`
	ReceivedAt       time.Time `json:"receivedAt"`
}

// EmailListResponse ответ со списком писем бронирования
type EmailListResponse struct {
	Count  int             `json:"count"`
	Emails []EmailResponse `json:"emails"`
}

// PaymentLinkResponse ответ с созданной платежной ссылкой
type PaymentLinkResponse struct {
	BookingID string  `json:"bookingId"`
	LinkID    string  `json:"linkId"`
	URL       string  `json:"url"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Для отображения tee time прогоняется через извлечение: прямое поле,
// затем selected_tee_times, затем текст заметки; сама запись при этом
// не изменяется.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		BookingID:           b.BookingID,
		GuestEmail:          b.GuestEmail,
		Club:                b.Club,
		Date:                b.Date.Format(domain.DateFormat),
		TeeTime:             teetime.Resolve(ptr.Value(b.TeeTime), ptr.Value(b.SelectedTeeTimes), ptr.Value(b.Note)),
		Players:             b.Players,
		Total:               b.Total,
		Status:              string(b.Status),
		Note:                b.Note,
		GolfCourses:         b.GolfCourses,
		SelectedTeeTimes:    b.SelectedTeeTimes,
		HotelRequired:       b.HotelRequired,
		Timestamp:           b.Timestamp,
		CustomerConfirmedAt: b.CustomerConfirmedAt,
		UpdatedAt:           b.UpdatedAt,
		UpdatedBy:           b.UpdatedBy,
		CreatedAt:           b.CreatedAt,
	}

	if b.HotelCheckin != nil {
		resp.HotelCheckin = ptr.Ptr(b.HotelCheckin.Format(domain.DateFormat))
	}
	if b.HotelCheckout != nil {
		resp.HotelCheckout = ptr.Ptr(b.HotelCheckout.Format(domain.DateFormat))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if converted := FromDomainBooking(b); converted != nil {
			resp.Bookings = append(resp.Bookings, *converted)
		}
	}

	return resp
}

// FromDomainEmail конвертирует domain модель письма в DTO
func FromDomainEmail(e *domain.InboundEmail) *EmailResponse {
	if e == nil {
		return nil
	}

	return &EmailResponse{
		ID:               e.ID,
		MessageID:        e.MessageID,
		FromEmail:        e.FromEmail,
		ToEmail:          e.ToEmail,
		Subject:          e.Subject,
		BodyText:         e.BodyText,
		EmailType:        string(e.EmailType),
		BookingID:        e.BookingID,
		Processed:        e.Processed,
		ProcessingStatus: e.ProcessingStatus,
		ErrorMessage:     e.ErrorMessage,
		ReceivedAt:       e.ReceivedAt,
	}
}

// FromDomainEmailList конвертирует список писем в DTO
func FromDomainEmailList(emails []*domain.InboundEmail) *EmailListResponse {
	resp := &EmailListResponse{
		Count:  len(emails),
		Emails: make([]EmailResponse, 0, len(emails)),
	}

	for _, e := range emails {
		if converted := FromDomainEmail(e); converted != nil {
			resp.Emails = append(resp.Emails, *converted)
		}
	}

	return resp
}
