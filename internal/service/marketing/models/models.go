package models

import "github.com/jimbobirecode/teemail-service/internal/domain"

// GuestSegment гость с назначенным маркетинговым сегментом
type GuestSegment struct {
	GuestEmail string  `json:"guestEmail"`
	Segment    string  `json:"segment"`
	Inquiries  int     `json:"inquiries"`
	Booked     int     `json:"booked"`
	TotalSpent float64 `json:"totalSpent"`
}

// SegmentsResponse разбивка гостей клуба по сегментам
type SegmentsResponse struct {
	Club   string         `json:"club"`
	Counts map[string]int `json:"counts"`
	Guests []GuestSegment `json:"guests"`
}

// FromDomainActivity сегментирует агрегированную активность гостей
func FromDomainActivity(club string, activity []domain.GuestActivity) *SegmentsResponse {
	resp := &SegmentsResponse{
		Club:   club,
		Counts: make(map[string]int, 4),
		Guests: make([]GuestSegment, 0, len(activity)),
	}

	for _, a := range activity {
		segment := string(domain.SegmentFor(a))
		resp.Counts[segment]++
		resp.Guests = append(resp.Guests, GuestSegment{
			GuestEmail: a.GuestEmail,
			Segment:    segment,
			Inquiries:  a.Inquiries,
			Booked:     a.Booked,
			TotalSpent: a.TotalSpent,
		})
	}

	return resp
}
