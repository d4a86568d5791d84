package repository

import (
	"context"

	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentLikeRepository interface {
	Create(ctx context.Context, like *models.CommentLike) error
	Get(ctx context.Context, id uint) (*models.CommentLike, error)
	Exists(ctx context.Context, userID, commentID uint) (bool, error)
	List(ctx context.Context) ([]models.CommentLike, error)
	Update(ctx context.Context, like *models.CommentLike) error
	Delete(ctx context.Context, id uint) error
}

type GormCommentLikeRepository struct {
	db *gorm.DB
}

func NewCommentLikeRepository(db *gorm.DB) *GormCommentLikeRepository {
	return &GormCommentLikeRepository{db: db}
}

func (r *GormCommentLikeRepository) Create(ctx context.Context, like *models.CommentLike) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error, "create comment like")
}

func (r *GormCommentLikeRepository) Get(ctx context.Context, id uint) (*models.CommentLike, error) {
	var like models.CommentLike
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, wrap(err, "get comment like")
	}
	return &like, nil
}

func (r *GormCommentLikeRepository) Exists(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "count comment likes")
	}
	return count > 0, nil
}

func (r *GormCommentLikeRepository) List(ctx context.Context) ([]models.CommentLike, error) {
	var likes []models.CommentLike
	if err := r.db.WithContext(ctx).Order("id").Find(&likes).Error; err != nil {
		return nil, wrap(err, "list comment likes")
	}
	return likes, nil
}

func (r *GormCommentLikeRepository) Update(ctx context.Context, like *models.CommentLike) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(like).Error, "update comment like")
}

func (r *GormCommentLikeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CommentLike{}, id)
	if result.Error != nil {
		return wrap(result.Error, "delete comment like")
	}
	if result.RowsAffected == 0 {
		return wrap(ErrNotFound, "delete comment like")
	}
	return nil
}
