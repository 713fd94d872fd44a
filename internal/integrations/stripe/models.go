package stripe

// PaymentLinkRequest параметры создания платежной ссылки
type PaymentLinkRequest struct {
	AmountCents int64  // сумма в минорных единицах валюты
	Currency    string // ISO код, например "eur"
	Description string // название позиции на странице оплаты
	Reference   string // внешний BookingID, попадает в metadata
}

// PaymentLink созданная платежная ссылка
type PaymentLink struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// price одноразовый Price, создаваемый под платежную ссылку
type price struct {
	ID string `json:"id"`
}

// errorResponse модель ошибки Stripe API
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
