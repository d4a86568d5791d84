package repository

import (
	"context"

	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Comment, error)
	// UpdateText changes only the text; the parent discussion is fixed.
	UpdateText(ctx context.Context, comment *models.Comment) error
	// Delete removes the comment with its replies and likes.
	Delete(ctx context.Context, id uint) error
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error, "create comment")
}

func (r *GormCommentRepository) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, wrap(err, "get comment")
	}
	return &comment, nil
}

func (r *GormCommentRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "count comments")
	}
	return count > 0, nil
}

func (r *GormCommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Order("id").Find(&comments).Error; err != nil {
		return nil, wrap(err, "list comments")
	}
	return comments, nil
}

func (r *GormCommentRepository) UpdateText(ctx context.Context, comment *models.Comment) error {
	return wrap(r.db.WithContext(ctx).Model(comment).Update("text", comment.Text).Error, "update comment")
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return deleteComments(tx, []uint{id})
	})
	return wrap(err, "delete comment")
}
