package repository

import (
	"time"

	"github.com/shenikar/emergency_map/internal/models"
)

// SeedData - начальное состояние хранилища инцидентов
type SeedData struct {
	UserLocation models.Position
	Emergencies  []models.Emergency
	Timelines    map[string][]models.TimelineEvent
}

// DefaultUserLocation - положение пользователя по умолчанию
var DefaultUserLocation = models.NewPosition(-74.006, 40.7228)

// DefaultSeed возвращает демонстрационные инциденты; время событий отсчитывается от now
func DefaultSeed(now time.Time) SeedData {
	ago := func(minutes int) time.Time {
		return now.Add(-time.Duration(minutes) * time.Minute)
	}

	return SeedData{
		UserLocation: DefaultUserLocation,
		Emergencies: []models.Emergency{
			{
				ID:          "1",
				Location:    models.NewPosition(-73.986, 40.7328),
				Radius:      1,
				Type:        "fire",
				Title:       "Small Fire",
				Description: "A trashcan is on fire in the classroom",
				Severity:    models.SeverityHigh,
				Timestamp:   now,
			},
			{
				ID:          "2",
				Location:    models.NewPosition(-73.956, 40.7128),
				Radius:      1,
				Type:        "injury",
				Title:       "Student Injury",
				Description: "A student fell and hit their head",
				Severity:    models.SeverityMedium,
				Timestamp:   now,
			},
			{
				ID:          "3",
				Location:    models.NewPosition(-73.986, 40.7128),
				Radius:      2,
				Type:        "traffic",
				Title:       "Minor Traffic Incident",
				Description: "A minor traffic incident",
				Severity:    models.SeverityLow,
				Timestamp:   now,
			},
		},
		Timelines: map[string][]models.TimelineEvent{
			"1": {
				{ID: "1-1", Title: "Emergency Services Notified", Description: "Local fire department has been dispatched to the location.", Timestamp: ago(2), Type: models.EventTypeAction, Severity: models.SeverityHigh},
				{ID: "1-2", Title: "Fire Detected", Description: "Smoke detectors triggered in Room 101.", Timestamp: ago(5), Type: models.EventTypeAlert, Severity: models.SeverityHigh},
				{ID: "1-3", Title: "Evacuation Started", Description: "Building evacuation protocol initiated.", Timestamp: ago(7), Type: models.EventTypeAction, Severity: models.SeverityHigh},
				{ID: "1-4", Title: "Smoke Reported", Description: "Student reported smoke coming from trash can in Room 101.", Timestamp: ago(15), Type: models.EventTypeNotification, Severity: models.SeverityMedium},
			},
			"2": {
				{ID: "2-1", Title: "Medical Team Dispatched", Description: "School nurse and first aid team dispatched to location.", Timestamp: ago(3), Type: models.EventTypeAction, Severity: models.SeverityMedium},
				{ID: "2-4", Title: "Parents Notified", Description: "Parents have been contacted and are on their way.", Timestamp: ago(4), Type: models.EventTypeNotification, Severity: models.SeverityLow},
				{ID: "2-3", Title: "First Aid Administered", Description: "Basic first aid administered by teacher on scene.", Timestamp: ago(6), Type: models.EventTypeUpdate, Severity: models.SeverityMedium},
				{ID: "2-2", Title: "Injury Reported", Description: "Student reported to have fallen and hit their head in the hallway.", Timestamp: ago(8), Type: models.EventTypeAlert, Severity: models.SeverityMedium},
			},
			"3": {
				{ID: "3-1", Title: "Traffic Control Established", Description: "Security personnel directing traffic around incident.", Timestamp: ago(5), Type: models.EventTypeAction, Severity: models.SeverityLow},
				{ID: "3-4", Title: "Alternate Route Advised", Description: "Staff and students advised to use north entrance until cleared.", Timestamp: ago(8), Type: models.EventTypeNotification, Severity: models.SeverityLow},
				{ID: "3-3", Title: "No Injuries Reported", Description: "All parties involved report no injuries.", Timestamp: ago(10), Type: models.EventTypeUpdate, Severity: models.SeverityLow},
				{ID: "3-2", Title: "Minor Collision Reported", Description: "Two vehicles involved in minor collision near school entrance.", Timestamp: ago(12), Type: models.EventTypeAlert, Severity: models.SeverityLow},
			},
		},
	}
}
