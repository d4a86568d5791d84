package repository

import (
	"context"
	"strings"

	"github.com/spyne-social/api-go/filters"
	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	// SearchByName matches name as a case-insensitive substring.
	SearchByName(ctx context.Context, name string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and everything that references them.
	Delete(ctx context.Context, id uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error, "create user")
}

func (r *GormUserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err, "get user")
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err, "get user by email")
	}
	return &user, nil
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, wrap(err, "count users by email")
	}
	return count > 0, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, wrap(err, "list users")
	}
	return users, nil
}

func (r *GormUserRepository) SearchByName(ctx context.Context, name string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, strings.ToLower(filters.LikePattern(name))).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, wrap(err, "search users")
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"email":     user.Email,
		"name":      user.Name,
		"mobile":    user.Mobile,
		"password":  user.Password,
		"is_active": user.IsActive,
		"is_staff":  user.IsStaff,
	}).Error
	return wrap(err, "update user")
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		var discussionIDs []uint
		if err := tx.Model(&models.Discussion{}).Where("user_id = ?", id).Pluck("id", &discussionIDs).Error; err != nil {
			return err
		}
		if err := deleteDiscussions(tx, discussionIDs); err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("user_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if err := deleteComments(tx, commentIDs); err != nil {
			return err
		}

		for _, owned := range []interface{}{&models.Reply{}, &models.Like{}, &models.CommentLike{}} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return wrap(err, "delete user")
}
