package models

import "time"

const (
	AssetTypeFireExtinguisher = "fire_extinguisher"
	AssetTypeFirstAid         = "first_aid"
)

// SafetyAsset - средство безопасности рядом с инцидентом (огнетушитель, аптечка)
type SafetyAsset struct {
	ID          string     `json:"id"`
	Location    Position   `json:"location"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}
