package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

// AttachmentRepositoryImpl is the owned-attachment contract shared by the
// product and post image sub-resources: append an image row to a parent,
// look one up, remove one. The parent row itself is never touched.
type AttachmentRepositoryImpl interface {
	ParentExists(ctx context.Context, parentID uint) (bool, error)
	Create(ctx context.Context, parentID uint, imagePath string) (interface{}, error)
	GetPath(ctx context.Context, id uint) (string, bool, error)
	Delete(ctx context.Context, id uint) error
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) AttachmentRepositoryImpl {
	return &productImageRepository{db: db}
}

func (r *productImageRepository) ParentExists(ctx context.Context, parentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", parentID).Count(&count).Error
	return count > 0, err
}

func (r *productImageRepository) Create(ctx context.Context, parentID uint, imagePath string) (interface{}, error) {
	image := models.ProductImage{ProductID: parentID, ImagePath: imagePath}
	if err := r.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (r *productImageRepository) GetPath(ctx context.Context, id uint) (string, bool, error) {
	var image models.ProductImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return image.ImagePath, true, nil
}

func (r *productImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProductImage{}, id).Error
}

type postImageRepository struct {
	db *gorm.DB
}

func NewPostImageRepository(db *gorm.DB) AttachmentRepositoryImpl {
	return &postImageRepository{db: db}
}

func (r *postImageRepository) ParentExists(ctx context.Context, parentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", parentID).Count(&count).Error
	return count > 0, err
}

func (r *postImageRepository) Create(ctx context.Context, parentID uint, imagePath string) (interface{}, error) {
	image := models.PostImage{PostID: parentID, ImagePath: imagePath}
	if err := r.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

func (r *postImageRepository) GetPath(ctx context.Context, id uint) (string, bool, error) {
	var image models.PostImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return image.ImagePath, true, nil
}

func (r *postImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.PostImage{}, id).Error
}
