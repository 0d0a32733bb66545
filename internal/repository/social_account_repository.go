package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/creatorflow/creatorflow-api/internal/models"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	ListActiveByUserID(ctx context.Context, userID int64, platforms []string) ([]*models.SocialAccount, error)
	ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error)
	CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error)
	SetTokens(ctx context.Context, accountID int64, accessToken, refreshToken string, expiresAt *time.Time) error
	SetStatus(ctx context.Context, accountID int64, status string) error
	Remove(ctx context.Context, id int64) error
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

const socialAccountColumns = `id, user_id, platform, account_id, account_name, account_username, profile_picture_url, access_token, refresh_token, token_expires_at, account_status, created_at, updated_at`

func scanSocialAccount(row interface{ Scan(...any) error }) (*models.SocialAccount, error) {
	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.UserID, &sa.Platform, &sa.AccountID, &sa.AccountName,
		&sa.AccountUsername, &sa.ProfilePicture, &sa.AccessToken, &sa.RefreshToken,
		&sa.TokenExpiresAt, &sa.AccountStatus, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sa, nil
}

func (r *socialAccountRepository) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	var err error
	var id int64

	var insertQuery = `
			INSERT INTO social_accounts(
				user_id,
				platform,
				account_id,
				account_name,
				account_username,
				profile_picture_url,
				access_token,
				refresh_token,
				token_expires_at,
				account_status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`

	status := sa.AccountStatus
	if status == "" {
		status = models.AccountStatusActive
	}

	if tx != nil {
		err = tx.QueryRowContext(ctx, insertQuery,
			sa.UserID,
			sa.Platform,
			sa.AccountID,
			sa.AccountName,
			sa.AccountUsername,
			sa.ProfilePicture,
			sa.AccessToken,
			sa.RefreshToken,
			sa.TokenExpiresAt,
			status,
		).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, insertQuery,
			sa.UserID,
			sa.Platform,
			sa.AccountID,
			sa.AccountName,
			sa.AccountUsername,
			sa.ProfilePicture,
			sa.AccessToken,
			sa.RefreshToken,
			sa.TokenExpiresAt,
			status,
		).Scan(&id)
	}

	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	sa, err := scanSocialAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return sa, nil
}

// ListActiveByUserID returns the user's connected accounts, restricted to the
// given platforms when the slice is non-empty. Accounts flagged needs_reauth
// are excluded.
func (r *socialAccountRepository) ListActiveByUserID(ctx context.Context, userID int64, platforms []string) ([]*models.SocialAccount, error) {
	query := `SELECT ` + socialAccountColumns + ` FROM social_accounts WHERE user_id = $1 AND account_status = $2`
	args := []interface{}{userID, models.AccountStatusActive}

	if len(platforms) > 0 {
		query += ` AND platform = ANY($3)`
		args = append(args, pq.Array(platforms))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		sa, err := scanSocialAccount(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, sa)
	}
	return accounts, nil
}

func (r *socialAccountRepository) ListByTimeInterval(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error) {
	query := `SELECT
			id,
			user_id,
			platform,
			access_token,
			refresh_token,
			token_expires_at
			FROM social_accounts
			WHERE (token_expires_at BETWEEN $1 AND $2)
			OR (token_expires_at < $3)`
	rows, err := r.db.QueryContext(ctx, query, initialTime, finalTime, initialTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var socialAccounts []*models.SocialAccount
	for rows.Next() {
		var sa models.SocialAccount
		err := rows.Scan(&sa.ID, &sa.UserID, &sa.Platform, &sa.AccessToken, &sa.RefreshToken, &sa.TokenExpiresAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		socialAccounts = append(socialAccounts, &sa)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return socialAccounts, nil
}

func (r *socialAccountRepository) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	query := `SELECT id, account_name, profile_picture_url, platform, account_status FROM social_accounts WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var socialAccounts []*models.SocialAccount
	for rows.Next() {
		var sa models.SocialAccount
		err := rows.Scan(&sa.ID, &sa.AccountName, &sa.ProfilePicture, &sa.Platform, &sa.AccountStatus)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		socialAccounts = append(socialAccounts, &sa)
	}
	return socialAccounts, nil
}

func (r *socialAccountRepository) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	query := "SELECT 1 FROM social_accounts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *socialAccountRepository) SetTokens(ctx context.Context, accountID int64, accessToken, refreshToken string, expiresAt *time.Time) error {
	query := `
		UPDATE social_accounts
		SET
			access_token = COALESCE(NULLIF($2, ''), access_token),
			refresh_token = COALESCE(NULLIF($3, ''), refresh_token),
			token_expires_at = COALESCE($4, token_expires_at),
			account_status = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, accountID, accessToken, refreshToken, expiresAt, models.AccountStatusActive)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *socialAccountRepository) SetStatus(ctx context.Context, accountID int64, status string) error {
	query := `UPDATE social_accounts SET account_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, accountID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *socialAccountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM social_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
