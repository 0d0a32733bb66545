package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/creatorflow/creatorflow-api/internal/models"
)

type PostMediaRepository interface {
	Create(ctx context.Context, tx *sql.Tx, pm *models.PostMedia) error
	ListByPostID(ctx context.Context, postID int64) ([]*models.PostMedia, error)
	ListURLsByPostID(ctx context.Context, postID int64) ([]string, error)
	Remove(ctx context.Context, postID int64) error
}

type postMediaRepository struct {
	db *sql.DB
}

func NewPostMediaRepository(db *sql.DB) PostMediaRepository {
	return &postMediaRepository{db: db}
}

func (r *postMediaRepository) Create(ctx context.Context, tx *sql.Tx, pm *models.PostMedia) error {
	var err error

	query := `
		INSERT INTO post_media (post_id, asset_id, display_order)
		VALUES ($1, $2, $3)
	`
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, pm.PostID, pm.AssetID, pm.DisplayOrder)
	} else {
		_, err = r.db.ExecContext(ctx, query, pm.PostID, pm.AssetID, pm.DisplayOrder)
	}

	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

func (r *postMediaRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PostMedia, error) {
	query := `
		SELECT post_id, asset_id, display_order
		FROM post_media
		WHERE post_id = $1
		ORDER BY display_order
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var postMedias []*models.PostMedia
	for rows.Next() {
		var pm models.PostMedia
		if err := rows.Scan(&pm.PostID, &pm.AssetID, &pm.DisplayOrder); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		postMedias = append(postMedias, &pm)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return postMedias, nil
}

// ListURLsByPostID joins through to media_assets and returns public URLs in
// display order.
func (r *postMediaRepository) ListURLsByPostID(ctx context.Context, postID int64) ([]string, error) {
	query := `
		SELECT ma.file_url
		FROM post_media pm
		JOIN media_assets ma ON ma.id = pm.asset_id
		WHERE pm.post_id = $1
		ORDER BY pm.display_order
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		urls = append(urls, url)
	}

	if err = rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return urls, nil
}

func (r *postMediaRepository) Remove(ctx context.Context, postID int64) error {
	query := `DELETE FROM post_media WHERE post_id = $1`
	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
