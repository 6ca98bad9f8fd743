package domain

import "time"

type Kind string

const (
	KindAvatar      Kind = "avatar"
	KindMeditation  Kind = "meditation"
	KindQuestionary Kind = "questionary"
	KindPerformance Kind = "performance"
)

// Kinds lists every session kind in dashboard order.
var Kinds = []Kind{KindAvatar, KindMeditation, KindQuestionary, KindPerformance}

func (k Kind) Valid() bool {
	switch k {
	case KindAvatar, KindMeditation, KindQuestionary, KindPerformance:
		return true
	}
	return false
}

// CollectionName is the name the dashboard backend serves the kind under.
func (k Kind) CollectionName() string {
	switch k {
	case KindAvatar:
		return "sessionAvatar"
	case KindMeditation:
		return "sessionMeditation"
	case KindQuestionary:
		return "sessionQuestionary"
	case KindPerformance:
		return "sessionPerformance"
	}
	return ""
}

// ParseKind accepts both the plain kind ("avatar") and the collection
// name the dashboard backend used ("sessionAvatar").
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "avatar", "sessionAvatar":
		return KindAvatar, true
	case "meditation", "sessionMeditation":
		return KindMeditation, true
	case "questionary", "sessionQuestionary":
		return KindQuestionary, true
	case "performance", "sessionPerformance", "performanceTest":
		return KindPerformance, true
	}
	return "", false
}

type Session struct {
	ID        string
	Kind      Kind
	Payload   map[string]any
	CreatedAt time.Time
}
