package domain

// Segment маркетинговый сегмент гостя
type Segment string

const (
	// SegmentProspect интересовался, но ни разу не доиграл до Booked
	SegmentProspect Segment = "prospect"
	// SegmentFirstTimer ровно одно состоявшееся бронирование
	SegmentFirstTimer Segment = "first_timer"
	// SegmentRepeat от двух до четырех состоявшихся бронирований
	SegmentRepeat Segment = "repeat"
	// SegmentVIP пять и более состоявшихся бронирований
	SegmentVIP Segment = "vip"
)

// Пороговые значения сегментации по числу бронирований со статусом Booked
const (
	RepeatMinBookings = 2
	VIPMinBookings    = 5
)

// GuestActivity агрегированная активность гостя в рамках одного клуба
type GuestActivity struct {
	GuestEmail string
	Inquiries  int // записи во всех статусах воронки
	Booked     int // записи, дошедшие до Booked
	TotalSpent float64
}

// SegmentFor относит гостя к сегменту по его активности
func SegmentFor(a GuestActivity) Segment {
	switch {
	case a.Booked >= VIPMinBookings:
		return SegmentVIP
	case a.Booked >= RepeatMinBookings:
		return SegmentRepeat
	case a.Booked == 1:
		return SegmentFirstTimer
	default:
		return SegmentProspect
	}
}
