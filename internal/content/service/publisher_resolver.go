package service

import (
	"context"
	"log/slog"
	"strings"

	contentDomain "github.com/allisson/paywall/internal/content/domain"
	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	apperrors "github.com/allisson/paywall/internal/errors"
	"github.com/allisson/paywall/internal/ledger"
)

// PublisherResolver finds the address an article was encrypted under.
// A miss is reported as contentDomain.ErrPublisherNotFound.
type PublisherResolver interface {
	Resolve(ctx context.Context, articleID uint64) (string, error)
}

// ContentLookup reads stored article content.
type ContentLookup interface {
	Get(ctx context.Context, articleID uint64) (*contentDomain.ArticleContent, error)
}

// LedgerPublisherResolver reads the author from the canonical article record.
type LedgerPublisherResolver struct {
	reader ledger.ArticleReader
}

// NewLedgerPublisherResolver creates a resolver over the canonical ledger read.
func NewLedgerPublisherResolver(reader ledger.ArticleReader) *LedgerPublisherResolver {
	return &LedgerPublisherResolver{reader: reader}
}

// Resolve returns the canonical article author.
func (r *LedgerPublisherResolver) Resolve(ctx context.Context, articleID uint64) (string, error) {
	article, err := r.reader.GetArticle(ctx, articleID)
	if err != nil {
		return "", err
	}
	return validPublisher(article.Author)
}

// LedgerRecordPublisherResolver reads the author from the raw storage record.
type LedgerRecordPublisherResolver struct {
	reader ledger.ArticleReader
}

// NewLedgerRecordPublisherResolver creates a resolver over the storage record read.
func NewLedgerRecordPublisherResolver(reader ledger.ArticleReader) *LedgerRecordPublisherResolver {
	return &LedgerRecordPublisherResolver{reader: reader}
}

// Resolve returns the author recorded in article storage.
func (r *LedgerRecordPublisherResolver) Resolve(ctx context.Context, articleID uint64) (string, error) {
	article, err := r.reader.GetArticleRecord(ctx, articleID)
	if err != nil {
		return "", err
	}
	return validPublisher(article.Author)
}

// StorePublisherResolver reads the publisher recorded when the content was stored.
type StorePublisherResolver struct {
	store ContentLookup
}

// NewStorePublisherResolver creates a resolver over the content store.
func NewStorePublisherResolver(store ContentLookup) *StorePublisherResolver {
	return &StorePublisherResolver{store: store}
}

// Resolve returns the publisher saved alongside the payload.
func (r *StorePublisherResolver) Resolve(ctx context.Context, articleID uint64) (string, error) {
	content, err := r.store.Get(ctx, articleID)
	if err != nil {
		return "", err
	}
	return validPublisher(content.PublisherAddress)
}

// StaticPublisherResolver answers from a configured article id to address table. It is
// the last resort for articles whose ledger record lost its author.
type StaticPublisherResolver struct {
	table map[uint64]string
}

// NewStaticPublisherResolver creates a resolver over a fixed table.
func NewStaticPublisherResolver(table map[uint64]string) *StaticPublisherResolver {
	copied := make(map[uint64]string, len(table))
	for id, address := range table {
		copied[id] = address
	}
	return &StaticPublisherResolver{table: copied}
}

// Resolve returns the configured address.
func (r *StaticPublisherResolver) Resolve(_ context.Context, articleID uint64) (string, error) {
	address, ok := r.table[articleID]
	if !ok {
		return "", contentDomain.ErrPublisherNotFound
	}
	return validPublisher(address)
}

// NamedResolver labels a resolver for logging.
type NamedResolver struct {
	Name     string
	Resolver PublisherResolver
}

// ChainPublisherResolver tries resolvers in order and returns the first valid address.
type ChainPublisherResolver struct {
	resolvers []NamedResolver
	logger    *slog.Logger
}

// NewChainPublisherResolver creates a resolver chain.
func NewChainPublisherResolver(logger *slog.Logger, resolvers ...NamedResolver) *ChainPublisherResolver {
	return &ChainPublisherResolver{resolvers: resolvers, logger: logger}
}

// Resolve walks the chain. Any failure moves on to the next resolver; when all of them
// miss, the result wraps ErrPublisherNotFound. The reader address is never a candidate.
func (c *ChainPublisherResolver) Resolve(ctx context.Context, articleID uint64) (string, error) {
	for _, r := range c.resolvers {
		if err := ctx.Err(); err != nil {
			return "", apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
		}

		address, err := r.Resolver.Resolve(ctx, articleID)
		if err == nil {
			return address, nil
		}

		if c.logger != nil {
			c.logger.Debug("publisher resolver missed",
				slog.String("resolver", r.Name),
				slog.Uint64("article_id", articleID),
				slog.Any("error", err),
			)
		}
	}
	return "", apperrors.Wrapf(contentDomain.ErrPublisherNotFound, "article %d", articleID)
}

// validPublisher rejects blank, malformed and zero addresses so the chain moves on.
func validPublisher(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" || cryptoDomain.ValidateAddress(address) != nil || cryptoDomain.IsZeroAddress(address) {
		return "", contentDomain.ErrPublisherNotFound
	}
	return cryptoDomain.NormalizeAddress(address), nil
}
