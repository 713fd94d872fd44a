package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"inquiry to requested", StatusInquiry, StatusRequested, true},
		{"requested to confirmed", StatusRequested, StatusConfirmed, true},
		{"confirmed to booked", StatusConfirmed, StatusBooked, true},
		{"inquiry skips to confirmed", StatusInquiry, StatusConfirmed, false},
		{"inquiry skips to booked", StatusInquiry, StatusBooked, false},
		{"requested back to inquiry", StatusRequested, StatusInquiry, false},
		{"inquiry to rejected", StatusInquiry, StatusRejected, true},
		{"requested to cancelled", StatusRequested, StatusCancelled, true},
		{"confirmed to rejected", StatusConfirmed, StatusRejected, true},
		{"booked to cancelled", StatusBooked, StatusCancelled, false},
		{"rejected is terminal", StatusRejected, StatusRequested, false},
		{"cancelled is terminal", StatusCancelled, StatusInquiry, false},
		{"no self transition", StatusRequested, StatusRequested, false},
		{"pending behaves as inquiry", StatusPending, StatusRequested, true},
		{"pending to inquiry is self transition", StatusPending, StatusInquiry, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusBooked.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInquiry.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	status, ok := ParseBookingStatus("Confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ParseBookingStatus("confirmed")
	assert.False(t, ok, "status values are case sensitive in the database")

	_, ok = ParseBookingStatus("Unknown")
	assert.False(t, ok)
}

func TestClubByID(t *testing.T) {
	for _, id := range []string{"island", "IslandGolfClub", "island-golf-club", "island_golf_club"} {
		info := ClubByID(id)
		assert.Equal(t, "The Island Golf Club", info.DisplayName, "id=%s", id)
	}

	unknown := ClubByID("demo_links_club")
	assert.Equal(t, "Demo Links Club", unknown.DisplayName)
	assert.Equal(t, "N/A", unknown.Phone)

	assert.Equal(t, "Unknown Club", ClubByID("").DisplayName)
}

func TestSegmentFor(t *testing.T) {
	tests := []struct {
		name     string
		activity GuestActivity
		expected Segment
	}{
		{"no bookings", GuestActivity{Inquiries: 3}, SegmentProspect},
		{"one booked", GuestActivity{Inquiries: 2, Booked: 1}, SegmentFirstTimer},
		{"two booked", GuestActivity{Booked: 2}, SegmentRepeat},
		{"four booked", GuestActivity{Booked: 4}, SegmentRepeat},
		{"five booked", GuestActivity{Booked: 5}, SegmentVIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SegmentFor(tt.activity))
		})
	}
}
