package repository

import (
	"context"
	"strings"

	"github.com/spyne-social/api-go/filters"
	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DiscussionRepository interface {
	Create(ctx context.Context, discussion *models.Discussion) error
	// Get loads the discussion with its comments and likes.
	Get(ctx context.Context, id uint) (*models.Discussion, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter filters.DiscussionFilter) ([]models.Discussion, error)
	// IncrementViews adds one to the view counter and returns the updated
	// discussion.
	IncrementViews(ctx context.Context, id uint) (*models.Discussion, error)
	Update(ctx context.Context, discussion *models.Discussion) error
	// Delete removes the discussion, its likes, and its comments with their
	// replies and comment likes.
	Delete(ctx context.Context, id uint) error
}

type GormDiscussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) *GormDiscussionRepository {
	return &GormDiscussionRepository{db: db}
}

func withEngagement(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id") }).
		Preload("Likes")
}

func (r *GormDiscussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(discussion).Error, "create discussion")
}

func (r *GormDiscussionRepository) Get(ctx context.Context, id uint) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := withEngagement(r.db.WithContext(ctx)).First(&discussion, id).Error; err != nil {
		return nil, wrap(err, "get discussion")
	}
	return &discussion, nil
}

func (r *GormDiscussionRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Discussion{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, wrap(err, "count discussions")
	}
	return count > 0, nil
}

// List narrows candidates in SQL with LIKE and then applies the exact
// whole-token hashtag and substring rules in Go, so matching behaves the same
// on every backing database.
func (r *GormDiscussionRepository) List(ctx context.Context, filter filters.DiscussionFilter) ([]models.Discussion, error) {
	query := withEngagement(r.db.WithContext(ctx))

	if len(filter.Hashtags) > 0 {
		tags := r.db.Where(`discussions.hashtags LIKE ? ESCAPE '\'`, filters.LikePattern(filter.Hashtags[0]))
		for _, tag := range filter.Hashtags[1:] {
			tags = tags.Or(`discussions.hashtags LIKE ? ESCAPE '\'`, filters.LikePattern(tag))
		}
		query = query.Where(tags)
	}
	if filter.Text != "" {
		query = query.Where(`LOWER(discussions.text) LIKE ? ESCAPE '\'`, strings.ToLower(filters.LikePattern(filter.Text)))
	}

	var discussions []models.Discussion
	if err := query.Order("discussions.id").Find(&discussions).Error; err != nil {
		return nil, wrap(err, "list discussions")
	}
	return filter.Apply(discussions), nil
}

func (r *GormDiscussionRepository) IncrementViews(ctx context.Context, id uint) (*models.Discussion, error) {
	var discussion models.Discussion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Discussion{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return withEngagement(tx).First(&discussion, id).Error
	})
	if err != nil {
		return nil, wrap(err, "increment discussion views")
	}
	return &discussion, nil
}

func (r *GormDiscussionRepository) Update(ctx context.Context, discussion *models.Discussion) error {
	err := r.db.WithContext(ctx).Model(discussion).Updates(map[string]interface{}{
		"text":     discussion.Text,
		"hashtags": discussion.Hashtags,
		"image":    discussion.Image,
	}).Error
	return wrap(err, "update discussion")
}

func (r *GormDiscussionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Discussion{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return deleteDiscussions(tx, []uint{id})
	})
	return wrap(err, "delete discussion")
}
