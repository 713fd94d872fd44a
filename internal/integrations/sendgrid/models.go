package sendgrid

// mailAddress адрес в формате SendGrid v3
type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// personalization блок получателей с данными шаблона
type personalization struct {
	To          []mailAddress          `json:"to"`
	DynamicData map[string]interface{} `json:"dynamic_template_data,omitempty"`
}

// mailRequest тело запроса POST /v3/mail/send
type mailRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             mailAddress       `json:"from"`
	TemplateID       string            `json:"template_id"`
}

// errorResponse модель ошибки SendGrid API
type errorResponse struct {
	Errors []struct {
		Message string  `json:"message"`
		Field   *string `json:"field"`
	} `json:"errors"`
}
