package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

type EnquiryRepositoryImpl interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uint) (*models.Enquiry, error)
	GetAll(ctx context.Context) ([]models.Enquiry, error)
	GetPaginated(ctx context.Context, opts ListOptions) ([]models.Enquiry, int64, error)
	Update(ctx context.Context, enquiry *models.Enquiry) error
	Delete(ctx context.Context, id uint) error
}

var enquiryOrderColumns = map[string]bool{
	"id": true, "name": true, "email": true, "product": true,
	"quantity": true, "city": true, "region": true, "status": true,
	"created_at": true, "updated_at": true,
}

type enquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) EnquiryRepositoryImpl {
	return &enquiryRepository{db: db}
}

func (r *enquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *enquiryRepository) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.WithContext(ctx).First(&enquiry, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepository) GetAll(ctx context.Context) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	if err := r.db.WithContext(ctx).Find(&enquiries).Error; err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *enquiryRepository) GetPaginated(ctx context.Context, opts ListOptions) ([]models.Enquiry, int64, error) {
	var enquiries []models.Enquiry
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Enquiry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order(orderClause(opts, enquiryOrderColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&enquiries).Error

	return enquiries, total, err
}

func (r *enquiryRepository) Update(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Save(enquiry).Error
}

func (r *enquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Enquiry{}, id).Error
}
