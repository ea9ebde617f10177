package models

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventTypeNotification EventType = "notification"
	EventTypeUpdate       EventType = "update"
	EventTypeAlert        EventType = "alert"
	EventTypeAction       EventType = "action"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeNotification, EventTypeUpdate, EventTypeAlert, EventTypeAction:
		return true
	}
	return false
}

// TimelineEvent - запись в ленте событий инцидента
type TimelineEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Severity    Severity  `json:"severity,omitempty"`
	ImgURL      string    `json:"imgUrl,omitempty"`
}

// NewTimelineEvent - данные для добавления события; ID и время проставляет хранилище
type NewTimelineEvent struct {
	Title       string
	Description string
	Type        EventType
	Severity    Severity
	ImgURL      string
}

// Validate проверяет событие перед добавлением в ленту
func (e NewTimelineEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, e.Type)
	}
	if !e.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, e.Severity)
	}
	return nil
}
