package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/creatorflow/creatorflow-api/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, postID int64, status string) error
	MarkPublished(ctx context.Context, postID int64, publishedAt time.Time, errorMessage string) error
	MarkFailed(ctx context.Context, postID int64, errorMessage string) error
	Schedule(ctx context.Context, postID int64, scheduledAt time.Time) error
	CancelSchedule(ctx context.Context, postID int64) error
	ClaimForPublishing(ctx context.Context, postID int64) (bool, error)
	ListDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, content, platforms, status, scheduled_at, published_at, error_message, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	var errorMessage sql.NullString
	err := row.Scan(&post.ID, &post.UserID, &post.Content, pq.Array(&post.Platforms), &post.Status, &post.ScheduledAt, &post.PublishedAt, &errorMessage, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	post.ErrorMessage = errorMessage.String
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, content, platforms, status, scheduled_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.UserID, post.Content, pq.Array(post.Platforms), post.Status, post.ScheduledAt).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.UserID, post.Content, pq.Array(post.Platforms), post.Status, post.ScheduledAt).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, postID int64, status string) error {
	query := `UPDATE posts SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// MarkPublished records a successful run. errorMessage keeps the platforms
// that still failed; empty clears the column.
func (r *postRepository) MarkPublished(ctx context.Context, postID int64, publishedAt time.Time, errorMessage string) error {
	query := `
		UPDATE posts
		SET status = $1,
			published_at = $2,
			error_message = NULLIF($3, ''),
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, publishedAt, errorMessage, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) MarkFailed(ctx context.Context, postID int64, errorMessage string) error {
	query := `
		UPDATE posts
		SET status = $1,
			error_message = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorMessage, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Schedule(ctx context.Context, postID int64, scheduledAt time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			scheduled_at = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusScheduled, scheduledAt, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CancelSchedule(ctx context.Context, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			scheduled_at = NULL,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusDraft, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ClaimForPublishing flips a scheduled post to publishing. The WHERE clause on
// status makes the claim atomic, so two workers racing on the same post cannot
// both win.
func (r *postRepository) ClaimForPublishing(ctx context.Context, postID int64) (bool, error) {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, models.PostStatusPublishing, time.Now(), postID, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *postRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE status = $1 AND scheduled_at <= $2`

	rows, err := r.db.QueryContext(ctx, query, models.PostStatusScheduled, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
