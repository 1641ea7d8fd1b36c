package posts

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hyun090116/vortex-game-explorer/pkg/db"
	"github.com/hyun090116/vortex-game-explorer/pkg/db/models"
	"github.com/hyun090116/vortex-game-explorer/pkg/enums"
	pkgerrors "github.com/hyun090116/vortex-game-explorer/pkg/errors"
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// Service exposes the community board operations. Counter-moving writes run
// inside a transaction so the board's optimistic UI reads back consistent
// numbers.
type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error)
	List(ctx context.Context, category *enums.PostCategory, params pagination.Params) (*ListResult, error)
	GetDetail(ctx context.Context, postID uuid.UUID) (*PostDetail, error)
	AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*CommentDTO, error)
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*ToggleLikeResult, error)
}

type service struct {
	repo *Repository
	db   *db.Client
}

// NewService wires the board service dependencies.
func NewService(repo *Repository, client *db.Client) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "posts repository required")
	}
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	return &service{repo: repo, db: client}, nil
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*PostDTO, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid post category")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and body are required")
	}

	post, err := s.repo.CreatePost(ctx, &models.Post{
		AuthorID:  authorID,
		Category:  input.Category,
		Title:     strings.TrimSpace(input.Title),
		Body:      input.Body,
		GameTitle: input.GameTitle,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create post")
	}
	return FromModel(post), nil
}

func (s *service) List(ctx context.Context, category *enums.PostCategory, params pagination.Params) (*ListResult, error) {
	if category != nil && !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid post category")
	}

	rows, nextCursor, err := s.repo.ListPosts(ctx, category, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list posts")
	}

	dtos := make([]PostDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &ListResult{Posts: dtos, NextCursor: nextCursor}, nil
}

func (s *service) GetDetail(ctx context.Context, postID uuid.UUID) (*PostDetail, error) {
	post, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load post")
	}

	comments, err := s.repo.ListComments(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load comments")
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		dtos = append(dtos, commentFromModel(&comments[i]))
	}
	return &PostDetail{Post: *FromModel(post), Comments: dtos}, nil
}

// AddComment writes the comment and moves the counter atomically.
func (s *service) AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*CommentDTO, error) {
	if strings.TrimSpace(body) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment body is required")
	}

	var created *models.PostComment
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindPostByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load post")
		}

		comment := &models.PostComment{
			PostID:   postID,
			AuthorID: authorID,
			Body:     body,
		}
		if _, err := repo.CreateComment(ctx, comment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create comment")
		}
		if err := repo.AdjustCommentCount(ctx, postID, 1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump comment count")
		}
		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := commentFromModel(created)
	return &dto, nil
}

// ToggleLike flips the (post, user) like and keeps the counter in step. The
// unique index backs the at-most-once guarantee under concurrent toggles.
func (s *service) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*ToggleLikeResult, error) {
	var result *ToggleLikeResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindPostByID(ctx, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load post")
		}

		_, err := repo.FindLike(ctx, postID, userID)
		switch {
		case err == nil:
			if err := repo.DeleteLike(ctx, postID, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove like")
			}
			if err := repo.AdjustLikeCount(ctx, postID, -1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drop like count")
			}
			result = &ToggleLikeResult{Liked: false}
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := &models.PostLike{PostID: postID, UserID: userID}
			if err := repo.CreateLike(ctx, like); err != nil {
				if !db.IsUniqueViolation(err, "uq_post_likes_post_user") {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create like")
				}
				// Lost a race with a concurrent like; the row exists now.
			} else if err := repo.AdjustLikeCount(ctx, postID, 1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump like count")
			}
			result = &ToggleLikeResult{Liked: true}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load like")
		}

		post, err := repo.FindPostByID(ctx, postID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload post")
		}
		result.LikeCount = post.LikeCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
