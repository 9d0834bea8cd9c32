package repositories

import (
	"context"

	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

type PostRepositoryImpl interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetPaginated(ctx context.Context, opts ListOptions) ([]models.Post, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

var postOrderColumns = map[string]bool{
	"id": true, "title": true, "slug": true, "type": true,
	"start_date": true, "end_date": true, "created_at": true, "updated_at": true,
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepositoryImpl {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Images").First(&post, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Preload("Images").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetPaginated(ctx context.Context, opts ListOptions) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Images").
		Order(orderClause(opts, postOrderColumns)).
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&posts).Error

	return posts, total, err
}

// SlugExists reports whether another post already uses the slug. excludeID
// skips the post being updated so it can keep its own slug.
func (r *postRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).Delete(&models.PostImage{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
