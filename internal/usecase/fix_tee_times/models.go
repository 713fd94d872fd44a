package fix_tee_times

// Request запрос массового восстановления tee time по клубу
type Request struct {
	Club string
}

// Response итоги прохода по бронированиям без tee time
type Response struct {
	Scanned    int      `json:"scanned"`    // бронирований без tee time найдено
	Updated    int      `json:"updated"`    // время извлечено и записано
	Unresolved int      `json:"unresolved"` // время извлечь не удалось
	UpdatedIDs []string `json:"updatedIds,omitempty"`
}
