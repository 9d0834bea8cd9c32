package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

type CertificateBadgeRepositoryImpl interface {
	Create(ctx context.Context, badge *models.CertificateBadge) error
	GetByID(ctx context.Context, id uint) (*models.CertificateBadge, error)
	GetAll(ctx context.Context) ([]models.CertificateBadge, error)
	GetPaginated(ctx context.Context, opts ListOptions) ([]models.CertificateBadge, int64, error)
	Update(ctx context.Context, badge *models.CertificateBadge) error
	Delete(ctx context.Context, id uint) error
}

var certificateBadgeOrderColumns = map[string]bool{
	"id": true, "title": true, "created_at": true, "updated_at": true,
}

type certificateBadgeRepository struct {
	db *gorm.DB
}

func NewCertificateBadgeRepository(db *gorm.DB) CertificateBadgeRepositoryImpl {
	return &certificateBadgeRepository{db: db}
}

func (r *certificateBadgeRepository) Create(ctx context.Context, badge *models.CertificateBadge) error {
	return r.db.WithContext(ctx).Create(badge).Error
}

func (r *certificateBadgeRepository) GetByID(ctx context.Context, id uint) (*models.CertificateBadge, error) {
	var badge models.CertificateBadge
	err := r.db.WithContext(ctx).First(&badge, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &badge, nil
}

func (r *certificateBadgeRepository) GetAll(ctx context.Context) ([]models.CertificateBadge, error) {
	var badges []models.CertificateBadge
	if err := r.db.WithContext(ctx).Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *certificateBadgeRepository) GetPaginated(ctx context.Context, opts ListOptions) ([]models.CertificateBadge, int64, error) {
	var badges []models.CertificateBadge
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.CertificateBadge{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order(orderClause(opts, certificateBadgeOrderColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&badges).Error

	return badges, total, err
}

func (r *certificateBadgeRepository) Update(ctx context.Context, badge *models.CertificateBadge) error {
	return r.db.WithContext(ctx).Save(badge).Error
}

func (r *certificateBadgeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CertificateBadge{}, id).Error
}
