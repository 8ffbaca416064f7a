package repository

import "go-barcode-engine/internal/models"

type PresetRepository struct {
	db *Database
}

func NewPresetRepository(db *Database) *PresetRepository {
	return &PresetRepository{db: db}
}

func (r *PresetRepository) List() ([]models.BarcodePreset, error) {
	var presets []models.BarcodePreset
	err := r.db.Order("name").Find(&presets).Error
	return presets, err
}

func (r *PresetRepository) GetByID(id uint) (*models.BarcodePreset, error) {
	var preset models.BarcodePreset
	err := r.db.First(&preset, id).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *PresetRepository) GetByName(name string) (*models.BarcodePreset, error) {
	var preset models.BarcodePreset
	err := r.db.Where("name = ?", name).First(&preset).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *PresetRepository) Create(preset *models.BarcodePreset) error {
	return r.db.Create(preset).Error
}

func (r *PresetRepository) Update(preset *models.BarcodePreset) error {
	return r.db.Save(preset).Error
}

func (r *PresetRepository) Delete(id uint) error {
	return r.db.Delete(&models.BarcodePreset{}, id).Error
}
