package repository

import (
	"context"

	"github.com/shenikar/emergency_map/internal/models"
	"github.com/shenikar/emergency_map/internal/service"
)

// AssetIndex - индекс средств безопасности по ID инцидента
type AssetIndex struct {
	assets map[string][]models.SafetyAsset
}

// NewAssetIndex создает индекс; таблица копируется
func NewAssetIndex(table map[string][]models.SafetyAsset) service.AssetRepository {
	assets := make(map[string][]models.SafetyAsset, len(table))
	for id, list := range table {
		assets[id] = append([]models.SafetyAsset{}, list...)
	}
	return &AssetIndex{assets: assets}
}

// GetAssets возвращает средства рядом с инцидентом; инцидент без записи дает пустой список
func (i *AssetIndex) GetAssets(ctx context.Context, emergencyID string) ([]models.SafetyAsset, error) {
	list := i.assets[emergencyID]
	assets := make([]models.SafetyAsset, len(list))
	copy(assets, list)
	return assets, nil
}

// DefaultAssets возвращает демонстрационную таблицу средств. У инцидента "3" записи нет.
func DefaultAssets() map[string][]models.SafetyAsset {
	return map[string][]models.SafetyAsset{
		"1": {
			{
				ID:          "fe-101",
				Location:    models.NewPosition(-73.9855, 40.7331),
				Type:        models.AssetTypeFireExtinguisher,
				Title:       "Fire Extinguisher",
				Description: "Wall-mounted extinguisher next to Room 101.",
			},
			{
				ID:          "fe-102",
				Location:    models.NewPosition(-73.9866, 40.7325),
				Type:        models.AssetTypeFireExtinguisher,
				Title:       "Fire Extinguisher",
				Description: "Hallway cabinet near the east stairwell.",
			},
			{
				ID:          "fa-101",
				Location:    models.NewPosition(-73.9862, 40.7333),
				Type:        models.AssetTypeFirstAid,
				Title:       "First Aid Kit",
				Description: "Kit stored in the science department office.",
			},
		},
		"2": {
			{
				ID:          "fa-201",
				Location:    models.NewPosition(-73.9563, 40.7131),
				Type:        models.AssetTypeFirstAid,
				Title:       "First Aid Kit",
				Description: "Nurse office first aid station.",
			},
			{
				ID:          "aed-201",
				Location:    models.NewPosition(-73.9557, 40.7126),
				Type:        "defibrillator",
				Title:       "AED",
				Description: "Automated external defibrillator by the gym entrance.",
			},
		},
	}
}
