package repository

import (
	"context"
	"database/sql"
	"errors"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/database"
	apperrors "github.com/allisson/paywall/internal/errors"
)

// MySQLArticleContentRepository stores article payloads in MySQL.
type MySQLArticleContentRepository struct {
	db *sql.DB
}

// Upsert inserts the payload or replaces the stored one for the same article.
func (m *MySQLArticleContentRepository) Upsert(
	ctx context.Context,
	content *contentDomain.ArticleContent,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO article_contents
			  (article_id, publisher_address, payload, payload_version, plaintext_size, payload_size, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  publisher_address = VALUES(publisher_address),
			  payload = VALUES(payload),
			  payload_version = VALUES(payload_version),
			  plaintext_size = VALUES(plaintext_size),
			  payload_size = VALUES(payload_size),
			  updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		content.ArticleID,
		content.PublisherAddress,
		content.Payload,
		content.PayloadVersion,
		content.PlaintextSize,
		content.PayloadSize,
		content.CreatedAt,
		content.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert article content")
	}
	return nil
}

// Get returns the stored payload for the article.
func (m *MySQLArticleContentRepository) Get(
	ctx context.Context,
	articleID uint64,
) (*contentDomain.ArticleContent, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT article_id, publisher_address, payload, payload_version, plaintext_size, payload_size,
			  created_at, updated_at
			  FROM article_contents WHERE article_id = ?`

	var content contentDomain.ArticleContent
	err := querier.QueryRowContext(ctx, query, articleID).Scan(
		&content.ArticleID,
		&content.PublisherAddress,
		&content.Payload,
		&content.PayloadVersion,
		&content.PlaintextSize,
		&content.PayloadSize,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contentDomain.ErrContentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article content")
	}

	return &content, nil
}

// Delete removes the stored payload for the article.
func (m *MySQLArticleContentRepository) Delete(ctx context.Context, articleID uint64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM article_contents WHERE article_id = ?`, articleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article content")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return contentDomain.ErrContentNotFound
	}
	return nil
}

// NewMySQLArticleContentRepository creates a MySQL content repository.
func NewMySQLArticleContentRepository(db *sql.DB) *MySQLArticleContentRepository {
	return &MySQLArticleContentRepository{db: db}
}
