package models

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid возвращает true для известных уровней и для пустого значения (уровень не задан)
func (s Severity) Valid() bool {
	switch s {
	case "", SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// Emergency - отслеживаемый инцидент на карте
type Emergency struct {
	ID          string     `json:"id"`
	Location    Position   `json:"location"`
	Radius      float64    `json:"radius"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	ContactedAt *time.Time `json:"contacted_at,omitempty"`
}

// Contacted сообщает, были ли уже вызваны экстренные службы
func (e Emergency) Contacted() bool {
	return e.ContactedAt != nil
}

// EmergencyOverview - сводка по инциденту для всплывающей карточки
type EmergencyOverview struct {
	Emergency     Emergency  `json:"emergency"`
	Contacted     bool       `json:"contacted"`
	ContactedAt   *time.Time `json:"contacted_at,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	LastUpdatedAt *time.Time `json:"last_updated_at,omitempty"`
	EventCount    int        `json:"event_count"`
}

// NewEmergencyOverview собирает сводку; timeline должен быть упорядочен от новых к старым
func NewEmergencyOverview(e Emergency, timeline []TimelineEvent) *EmergencyOverview {
	overview := &EmergencyOverview{
		Emergency:   e,
		Contacted:   e.Contacted(),
		ContactedAt: e.ContactedAt,
		EventCount:  len(timeline),
	}
	if len(timeline) > 0 {
		started := timeline[len(timeline)-1].Timestamp
		updated := timeline[0].Timestamp
		overview.StartedAt = &started
		overview.LastUpdatedAt = &updated
	}
	return overview
}
