// Package repository persists sealed article payloads in PostgreSQL and MySQL.
//
// Only the wire-format payload and the publisher address are stored; plaintext never
// reaches the database. Both implementations are transaction aware through
// database.GetTx, so a publish can be grouped with other writes via TxManager.
package repository

import (
	"context"
	"database/sql"
	"errors"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	"github.com/allisson/paywall/internal/database"
	apperrors "github.com/allisson/paywall/internal/errors"
)

// PostgreSQLArticleContentRepository stores article payloads in PostgreSQL.
type PostgreSQLArticleContentRepository struct {
	db *sql.DB
}

// Upsert inserts the payload or replaces the stored one for the same article. created_at is
// kept from the first insert.
func (p *PostgreSQLArticleContentRepository) Upsert(
	ctx context.Context,
	content *contentDomain.ArticleContent,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO article_contents
			  (article_id, publisher_address, payload, payload_version, plaintext_size, payload_size, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (article_id) DO UPDATE SET
			  publisher_address = EXCLUDED.publisher_address,
			  payload = EXCLUDED.payload,
			  payload_version = EXCLUDED.payload_version,
			  plaintext_size = EXCLUDED.plaintext_size,
			  payload_size = EXCLUDED.payload_size,
			  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		int64(content.ArticleID),
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
func (p *PostgreSQLArticleContentRepository) Get(
	ctx context.Context,
	articleID uint64,
) (*contentDomain.ArticleContent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT article_id, publisher_address, payload, payload_version, plaintext_size, payload_size,
			  created_at, updated_at
			  FROM article_contents WHERE article_id = $1`

	var content contentDomain.ArticleContent
	var id int64
	err := querier.QueryRowContext(ctx, query, int64(articleID)).Scan(
		&id,
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
	content.ArticleID = uint64(id)

	return &content, nil
}

// Delete removes the stored payload for the article.
func (p *PostgreSQLArticleContentRepository) Delete(ctx context.Context, articleID uint64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM article_contents WHERE article_id = $1`, int64(articleID))
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article content")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return contentDomain.ErrContentNotFound
	}
	return nil
}

// NewPostgreSQLArticleContentRepository creates a PostgreSQL content repository.
func NewPostgreSQLArticleContentRepository(db *sql.DB) *PostgreSQLArticleContentRepository {
	return &PostgreSQLArticleContentRepository{db: db}
}
