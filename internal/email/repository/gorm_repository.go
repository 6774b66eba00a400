package repository

import (
	"encoding/json"
	"fmt"

	emaildomain "email-agent-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Columns backed by the json serializer. Map-based Updates bypasses GORM's
// serializer machinery, so these values are marshaled before the update.
var jsonColumns = map[string]bool{
	"action_items": true,
	"tags":         true,
	"metadata":     true,
	"summary":      true,
}

// gormEmailRepository implements EmailRepository using GORM
type gormEmailRepository struct {
	db *gorm.DB
}

// NewGormEmailRepository creates a new GORM-based EmailRepository
func NewGormEmailRepository(db *gorm.DB) EmailRepository {
	return &gormEmailRepository{db: db}
}

func (r *gormEmailRepository) Create(email *emaildomain.Email) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	return r.db.Create(email).Error
}

func (r *gormEmailRepository) CreateBatch(emails []*emaildomain.Email) error {
	if len(emails) == 0 {
		return nil
	}
	for _, email := range emails {
		if email.ID == "" {
			email.ID = uuid.New().String()
		}
	}
	return r.db.Create(emails).Error
}

func (r *gormEmailRepository) FindAll() ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Order("timestamp ASC").Find(&emails).Error
	return emails, err
}

func (r *gormEmailRepository) FindByID(id string) (*emaildomain.Email, error) {
	var email emaildomain.Email
	err := r.db.Where("id = ?", id).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *gormEmailRepository) FindByStatus(status emaildomain.EmailStatus) ([]*emaildomain.Email, error) {
	var emails []*emaildomain.Email
	err := r.db.Where("status = ?", status).Order("timestamp ASC").Find(&emails).Error
	return emails, err
}

func (r *gormEmailRepository) UpdateFields(id string, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if jsonColumns[k] && v != nil {
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode %s: %w", k, err)
			}
			updates[k] = string(raw)
		} else {
			updates[k] = v
		}
	}
	return r.db.Model(&emaildomain.Email{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormEmailRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&emaildomain.Email{}).Error
}
