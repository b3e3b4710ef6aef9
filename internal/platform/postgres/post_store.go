package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
	"gorm.io/gorm"
)

// PostgresPostStore implements the store.PostStore interface on top of GORM.
type PostgresPostStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostStore backed by db.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db *gorm.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *gorm.DB) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PostStore.Create
// Returns store.ErrInvalidEntity if the author does not exist (foreign key violation).
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	row := toPostModel(post)
	if err := s.db.WithContext(ctx).Omit("Author").Create(&row).Error; err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during post creation",
				slog.String("post_id", post.ID.String()),
				slog.String("author_id", post.AuthorID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, post.AuthorID)
		}

		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()),
			slog.String("author_id", post.AuthorID.String()))
		return MapError(err)
	}

	post.CreatedAt = row.CreatedAt
	post.UpdatedAt = row.UpdatedAt

	log.Info("post created successfully",
		slog.String("post_id", post.ID.String()),
		slog.String("author_id", post.AuthorID.String()))
	return nil
}

// Update implements store.PostStore.Update
//
// The statement is scoped by both id and author_id, so a post owned by someone
// else is indistinguishable from a missing one. An empty update only checks
// that the post exists for that author.
func (s *PostgresPostStore) Update(
	ctx context.Context,
	id, authorID uuid.UUID,
	update store.PostUpdate,
) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("post_id", id.String()),
		slog.String("author_id", authorID.String()))

	scope := s.db.WithContext(ctx).Model(&postModel{}).
		Where("id = ? AND author_id = ?", id, authorID)

	if !update.Empty() {
		changes := map[string]any{}
		if update.Title != nil {
			changes["title"] = *update.Title
		}
		if update.Content != nil {
			changes["content"] = *update.Content
		}

		// Model(&postModel{}) makes GORM add updated_at to the map.
		result := scope.Updates(changes)
		if result.Error != nil {
			log.Error("failed to update post", slog.String("error", result.Error.Error()))
			return nil, MapError(result.Error)
		}
		if result.RowsAffected == 0 {
			log.Debug("no post matched update")
			return nil, store.ErrPostNotFound
		}
	}

	var row postModel
	err := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("no post matched update")
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to reload post after update", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Info("post updated successfully")
	return row.toDomain(), nil
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row postModel
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, MapError(err)
	}

	return row.toDomain(), nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []postModel
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	posts := make([]*domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toDomain())
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}
