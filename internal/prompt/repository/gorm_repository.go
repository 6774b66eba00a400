package repository

import (
	promptdomain "email-agent-backend/internal/prompt/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormPromptRepository implements PromptRepository using GORM
type gormPromptRepository struct {
	db *gorm.DB
}

// NewGormPromptRepository creates a new GORM-based PromptRepository
func NewGormPromptRepository(db *gorm.DB) PromptRepository {
	return &gormPromptRepository{db: db}
}

func (r *gormPromptRepository) FindActive() (*promptdomain.PromptConfig, error) {
	var config promptdomain.PromptConfig
	err := r.db.First(&config).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *gormPromptRepository) Create(config *promptdomain.PromptConfig) error {
	if config.ID == "" {
		config.ID = uuid.New().String()
	}
	return r.db.Create(config).Error
}

func (r *gormPromptRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&promptdomain.PromptConfig{}).Where("id = ?", id).Updates(fields).Error
}

func (r *gormPromptRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&promptdomain.PromptConfig{}).Error
}
