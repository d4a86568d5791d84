// Package repository is the storage boundary: one interface per entity with a
// gorm-backed implementation. Handlers depend only on the interfaces.
package repository

import (
	"github.com/pkg/errors"
	"github.com/spyne-social/api-go/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repositories bundles every entity repository over one database handle.
type Repositories struct {
	Users        UserRepository
	Follows      FollowRepository
	Discussions  DiscussionRepository
	Comments     CommentRepository
	Replies      ReplyRepository
	Likes        LikeRepository
	CommentLikes CommentLikeRepository
}

var (
	_ UserRepository        = (*GormUserRepository)(nil)
	_ FollowRepository      = (*GormFollowRepository)(nil)
	_ DiscussionRepository  = (*GormDiscussionRepository)(nil)
	_ CommentRepository     = (*GormCommentRepository)(nil)
	_ ReplyRepository       = (*GormReplyRepository)(nil)
	_ LikeRepository        = (*GormLikeRepository)(nil)
	_ CommentLikeRepository = (*GormCommentLikeRepository)(nil)
)

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Follows:      NewFollowRepository(db),
		Discussions:  NewDiscussionRepository(db),
		Comments:     NewCommentRepository(db),
		Replies:      NewReplyRepository(db),
		Likes:        NewLikeRepository(db),
		CommentLikes: NewCommentLikeRepository(db),
	}
}

// translate maps gorm's sentinel errors onto the package's own. The database
// must be opened with TranslateError for duplicate keys to be recognised.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func wrap(err error, msg string) error {
	return errors.Wrap(translate(err), msg)
}

// deleteComments removes comments together with their replies and likes.
func deleteComments(tx *gorm.DB, commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.Reply{}).Error; err != nil {
		return err
	}
	if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error
}

// deleteDiscussions removes discussions together with their likes and their
// comment trees.
func deleteDiscussions(tx *gorm.DB, discussionIDs []uint) error {
	if len(discussionIDs) == 0 {
		return nil
	}
	var commentIDs []uint
	if err := tx.Model(&models.Comment{}).Where("discussion_id IN ?", discussionIDs).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if err := deleteComments(tx, commentIDs); err != nil {
		return err
	}
	if err := tx.Where("discussion_id IN ?", discussionIDs).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", discussionIDs).Delete(&models.Discussion{}).Error
}
