package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

type ApplicantRepositoryImpl interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	GetByID(ctx context.Context, id uint) (*models.Applicant, error)
	GetAll(ctx context.Context) ([]models.Applicant, error)
	GetPaginated(ctx context.Context, opts ListOptions) ([]models.Applicant, int64, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	Update(ctx context.Context, applicant *models.Applicant) error
	Delete(ctx context.Context, id uint) error
}

var applicantOrderColumns = map[string]bool{
	"id": true, "name": true, "email": true, "applied_for": true,
	"experience": true, "branch": true, "status": true,
	"created_at": true, "updated_at": true,
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepositoryImpl {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) GetByID(ctx context.Context, id uint) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.WithContext(ctx).First(&applicant, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) GetAll(ctx context.Context) ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.WithContext(ctx).Find(&applicants).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}

func (r *applicantRepository) GetPaginated(ctx context.Context, opts ListOptions) ([]models.Applicant, int64, error) {
	var applicants []models.Applicant
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Applicant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order(orderClause(opts, applicantOrderColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&applicants).Error

	return applicants, total, err
}

func (r *applicantRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Applicant{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicantRepository) Update(ctx context.Context, applicant *models.Applicant) error {
	return r.db.WithContext(ctx).Save(applicant).Error
}

func (r *applicantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Applicant{}, id).Error
}
