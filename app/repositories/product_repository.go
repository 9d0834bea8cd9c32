package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetPaginated(ctx context.Context, opts ListOptions) ([]models.Product, int64, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

var productOrderColumns = map[string]bool{
	"id": true, "name": true, "category_id": true, "variant": true,
	"status": true, "created_at": true, "updated_at": true,
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		First(&product, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetPaginated(ctx context.Context, opts ListOptions) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Order(orderClause(opts, productOrderColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the product and its image rows. Backing files are the
// handler's responsibility, which deletes them before calling this.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
