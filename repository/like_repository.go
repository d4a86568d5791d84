package repository

import (
	"context"

	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Create fails with ErrDuplicate when the user already likes the
	// discussion.
	Create(ctx context.Context, like *models.Like) error
	Get(ctx context.Context, id uint) (*models.Like, error)
	GetByUserAndDiscussion(ctx context.Context, userID, discussionID uint) (*models.Like, error)
	Exists(ctx context.Context, userID, discussionID uint) (bool, error)
	List(ctx context.Context) ([]models.Like, error)
	// Update fails with ErrDuplicate when the new target is already liked.
	Update(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, id uint) error
}

type GormLikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

func (r *GormLikeRepository) Create(ctx context.Context, like *models.Like) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error, "create like")
}

func (r *GormLikeRepository) Get(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, wrap(err, "get like")
	}
	return &like, nil
}

func (r *GormLikeRepository) GetByUserAndDiscussion(ctx context.Context, userID, discussionID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND discussion_id = ?", userID, discussionID).
		First(&like).Error
	if err != nil {
		return nil, wrap(err, "get like by user and discussion")
	}
	return &like, nil
}

func (r *GormLikeRepository) Exists(ctx context.Context, userID, discussionID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND discussion_id = ?", userID, discussionID).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "count likes")
	}
	return count > 0, nil
}

func (r *GormLikeRepository) List(ctx context.Context) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).Order("id").Find(&likes).Error; err != nil {
		return nil, wrap(err, "list likes")
	}
	return likes, nil
}

func (r *GormLikeRepository) Update(ctx context.Context, like *models.Like) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(like).Error, "update like")
}

func (r *GormLikeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Like{}, id)
	if result.Error != nil {
		return wrap(result.Error, "delete like")
	}
	if result.RowsAffected == 0 {
		return wrap(ErrNotFound, "delete like")
	}
	return nil
}
