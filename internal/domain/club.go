package domain

import "strings"

// ClubInfo справочная информация о клубе для писем и выгрузок
type ClubInfo struct {
	DisplayName string
	BrandColor  string // hex
	Phone       string
	Email       string
	Location    string
	Website     string
}

// defaultBrandColor используется для клубов без собственного брендинга
const defaultBrandColor = "#2563eb"

// islandInfo все исторические написания идентификатора The Island
// указывают на одну и ту же запись
var islandInfo = ClubInfo{
	DisplayName: "The Island Golf Club",
	BrandColor:  defaultBrandColor,
	Phone:       "(555) 123-4567",
	Email:       "bookings@islandgolfclub.com",
	Location:    "Island Golf Club, Paradise Bay",
	Website:     "www.islandgolfclub.com",
}

var clubRegistry = map[string]ClubInfo{
	"island":           islandInfo,
	"islandgolfclub":   islandInfo,
	"island-golf-club": islandInfo,
	"island_golf_club": islandInfo,
}

// ClubByID возвращает информацию о клубе по его идентификатору.
// Для неизвестных клубов display name собирается из самого идентификатора,
// контактные поля получают заглушки.
func ClubByID(clubID string) ClubInfo {
	if info, ok := clubRegistry[strings.ToLower(clubID)]; ok {
		return info
	}

	return ClubInfo{
		DisplayName: titleFromID(clubID),
		BrandColor:  defaultBrandColor,
		Phone:       "N/A",
		Email:       "N/A",
		Location:    "N/A",
		Website:     "N/A",
	}
}

// titleFromID превращает "demo_links_club" в "Demo Links Club"
func titleFromID(clubID string) string {
	if clubID == "" {
		return "Unknown Club"
	}

	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(clubID)
	words := strings.Fields(replaced)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
