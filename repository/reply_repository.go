package repository

import (
	"context"

	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	Get(ctx context.Context, id uint) (*models.Reply, error)
	List(ctx context.Context) ([]models.Reply, error)
	// UpdateText changes only the text; the parent comment is fixed.
	UpdateText(ctx context.Context, reply *models.Reply) error
	Delete(ctx context.Context, id uint) error
}

type GormReplyRepository struct {
	db *gorm.DB
}

func NewReplyRepository(db *gorm.DB) *GormReplyRepository {
	return &GormReplyRepository{db: db}
}

func (r *GormReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error, "create reply")
}

func (r *GormReplyRepository) Get(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		return nil, wrap(err, "get reply")
	}
	return &reply, nil
}

func (r *GormReplyRepository) List(ctx context.Context) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.WithContext(ctx).Order("id").Find(&replies).Error; err != nil {
		return nil, wrap(err, "list replies")
	}
	return replies, nil
}

func (r *GormReplyRepository) UpdateText(ctx context.Context, reply *models.Reply) error {
	return wrap(r.db.WithContext(ctx).Model(reply).Update("text", reply.Text).Error, "update reply")
}

func (r *GormReplyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Reply{}, id)
	if result.Error != nil {
		return wrap(result.Error, "delete reply")
	}
	if result.RowsAffected == 0 {
		return wrap(ErrNotFound, "delete reply")
	}
	return nil
}
