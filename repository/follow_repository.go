package repository

import (
	"context"

	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	// Create fails with ErrDuplicate when the pair already exists.
	Create(ctx context.Context, follow *models.Follow) error
	Get(ctx context.Context, id uint) (*models.Follow, error)
	GetPair(ctx context.Context, followerID, followingID uint) (*models.Follow, error)
	List(ctx context.Context) ([]models.Follow, error)
	Delete(ctx context.Context, id uint) error
	// Followers returns the users following userID, newest first.
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	// Following returns the users userID follows, newest first.
	Following(ctx context.Context, userID uint) ([]models.User, error)
}

type GormFollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

func (r *GormFollowRepository) withUsers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Follower").Preload("Following")
}

func (r *GormFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(follow).Error; err != nil {
		return wrap(err, "create follow")
	}
	return wrap(r.withUsers(ctx).First(follow, follow.ID).Error, "reload follow")
}

func (r *GormFollowRepository) Get(ctx context.Context, id uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.withUsers(ctx).First(&follow, id).Error; err != nil {
		return nil, wrap(err, "get follow")
	}
	return &follow, nil
}

func (r *GormFollowRepository) GetPair(ctx context.Context, followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.withUsers(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		return nil, wrap(err, "get follow pair")
	}
	return &follow, nil
}

func (r *GormFollowRepository) List(ctx context.Context) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.withUsers(ctx).Order("created_at DESC, id DESC").Find(&follows).Error; err != nil {
		return nil, wrap(err, "list follows")
	}
	return follows, nil
}

func (r *GormFollowRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Follow{}, id)
	if result.Error != nil {
		return wrap(result.Error, "delete follow")
	}
	if result.RowsAffected == 0 {
		return wrap(ErrNotFound, "delete follow")
	}
	return nil
}

func (r *GormFollowRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return r.otherParty(ctx, "follows.follower_id", "follows.following_id", userID)
}

func (r *GormFollowRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return r.otherParty(ctx, "follows.following_id", "follows.follower_id", userID)
}

// otherParty joins users on joinColumn for every follow row whose
// whereColumn equals userID.
func (r *GormFollowRepository) otherParty(ctx context.Context, joinColumn, whereColumn string, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*").
		Joins("JOIN follows ON "+joinColumn+" = users.id").
		Where(whereColumn+" = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, wrap(err, "list follow parties")
	}
	return users, nil
}
