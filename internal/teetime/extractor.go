// Package teetime extracts tee times from the loosely-structured fields a
// booking record accumulates: a directly entered tee_time column, the
// selected_tee_times blob the email bot writes, or a copy-pasted email body
// in the note column. All functions are pure and safe for concurrent use.
package teetime

import (
	"encoding/json"
	"regexp"
	"strings"
)

// NotSpecified сентинел, которым заполняется tee_time, когда время
// не удалось извлечь ни из одного источника
const NotSpecified = "TBD"

var (
	// time:12:20 PM внутри полуструктурированной строки (без пробела после двоеточия ключа)
	structuredTimePattern = regexp.MustCompile(`(?i)time:(\d{1,2}:\d{2}\s*[AP]M)`)

	// Строка, начинающаяся с самого времени: "12:20 PM ..."
	bareTimePattern = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*[AP]M`)

	// Паттерны для свободного текста, в порядке приоритета.
	// Первые два совпадают при case-insensitive матчинге; оба сохранены
	// для совместимости с исходным поведением бота.
	freeTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Time:\s*(\d{1,2}:\d{2}\s*[AP]M)`),
		regexp.MustCompile(`(?i)time:\s*(\d{1,2}:\d{2}\s*[AP]M)`),
		regexp.MustCompile(`(?i)Tee\s+Time:\s*(\d{1,2}:\d{2}\s*[AP]M)`),
	}
)

// FromStructured извлекает время из selected_tee_times: map с ключом "time",
// JSON-строка с таким map, строка вида "time:HH:MM AM" или строка,
// начинающаяся с самого времени. Значение из map возвращается как есть,
// без нормализации. Битый JSON не является ошибкой: интерпретация просто
// пропускается.
func FromStructured(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false

	case map[string]interface{}:
		return timeFromMap(v)

	case map[string]string:
		if t, ok := v["time"]; ok && t != "" {
			return t, true
		}
		return "", false

	case string:
		if v == "" {
			return "", false
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			if t, ok := timeFromMap(decoded); ok {
				return t, true
			}
		}

		if m := structuredTimePattern.FindStringSubmatch(v); m != nil {
			return strings.TrimSpace(m[1]), true
		}

		if bareTimePattern.MatchString(v) {
			return v, true
		}

		return "", false

	default:
		return "", false
	}
}

func timeFromMap(m map[string]interface{}) (string, bool) {
	raw, ok := m["time"]
	if !ok {
		return "", false
	}
	t, ok := raw.(string)
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

// FromFreeText извлекает время из произвольного текста (например, тела
// письма). Ищет "Time:", "time:" и "Tee Time:" с последующим временем;
// первый сработавший паттерн побеждает. Часы и минуты не валидируются:
// "13:99 PM" возвращается как есть, ровно как его записал бы бот.
func FromFreeText(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, pattern := range freeTextPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return normalizeMeridiem(strings.TrimSpace(m[1])), true
		}
	}

	return "", false
}

// normalizeMeridiem приводит буквы AM/PM к верхнему регистру,
// не трогая цифры
func normalizeMeridiem(t string) string {
	return strings.ToUpper(t)
}

// Resolve выбирает время по фиксированному приоритету: непустое прямое поле
// возвращается без изменений; затем структурированный блоб; затем свободный
// текст; если ничего не нашлось, возвращается NotSpecified. Явные данные
// всегда важнее вывода из прозы.
func Resolve(direct string, structured interface{}, freeText string) string {
	if direct != "" {
		return direct
	}

	if t, ok := FromStructured(structured); ok {
		return t
	}

	if t, ok := FromFreeText(freeText); ok {
		return t
	}

	return NotSpecified
}
