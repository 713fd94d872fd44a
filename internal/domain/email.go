package domain

import "time"

// EmailType классификация входящего письма, присвоенная email-ботом
type EmailType string

const (
	EmailInquiry           EmailType = "inquiry"
	EmailBookingRequest    EmailType = "booking_request"
	EmailStaffConfirmation EmailType = "staff_confirmation"
	EmailWaitlistOptIn     EmailType = "waitlist_optin"
	EmailCustomerReply     EmailType = "customer_reply"
)

// InboundEmail входящее письмо, сохраненное email-ботом. Письмо либо
// привязано к бронированию через BookingID, либо сопоставляется позднее
// по адресу гостя.
type InboundEmail struct {
	ID        int64
	MessageID string

	FromEmail string
	ToEmail   string
	Subject   *string
	BodyText  *string

	EmailType EmailType
	BookingID *string // внешний BookingID; nil, пока письмо не привязано

	Processed        bool
	ProcessingStatus *string
	ErrorMessage     *string

	ReceivedAt time.Time
}
