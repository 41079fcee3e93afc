package app

import (
	"fmt"
	"time"

	contentHTTP "github.com/allisson/paywall/internal/content/http"
	contentRepository "github.com/allisson/paywall/internal/content/repository"
	contentService "github.com/allisson/paywall/internal/content/service"
	contentUseCase "github.com/allisson/paywall/internal/content/usecase"
	cryptoService "github.com/allisson/paywall/internal/crypto/service"
	"github.com/allisson/paywall/internal/database"
	"github.com/allisson/paywall/internal/ledger"
)

// Cipher returns the payload cipher.
func (c *Container) Cipher() cryptoService.SymmetricCipher {
	c.cipherInit.Do(func() {
		c.cipher = cryptoService.NewChaCha20Poly1305()
	})
	return c.cipher
}

// KeyDerivation returns the article key derivation service.
func (c *Container) KeyDerivation() cryptoService.KeyDerivation {
	c.keyDerivationInit.Do(func() {
		c.keyDerivation = cryptoService.NewPBKDF2KeyDerivation(c.config.KDFSalt)
	})
	return c.keyDerivation
}

// DecryptionCache returns the process-wide decrypted content cache.
func (c *Container) DecryptionCache() *contentService.DecryptionCache {
	c.decryptionCacheInit.Do(func() {
		c.decryptionCache = contentService.NewDecryptionCache(c.config.CacheTTL, time.Now)
	})
	return c.decryptionCache
}

// ArticleContentRepository returns the content store based on database driver.
func (c *Container) ArticleContentRepository() (contentUseCase.ArticleContentRepository, error) {
	var err error
	c.articleContentRepositoryInit.Do(func() {
		c.articleContentRepository, err = c.initArticleContentRepository()
		if err != nil {
			c.initErrors["articleContentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleContentRepository"]; exists {
		return nil, storedErr
	}
	return c.articleContentRepository, nil
}

// PublisherResolver returns the publisher resolver chain.
func (c *Container) PublisherResolver() (contentService.PublisherResolver, error) {
	var err error
	c.publisherResolverInit.Do(func() {
		c.publisherResolver, err = c.initPublisherResolver()
		if err != nil {
			c.initErrors["publisherResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisherResolver"]; exists {
		return nil, storedErr
	}
	return c.publisherResolver, nil
}

// EncryptionUseCase returns the encryption use case.
func (c *Container) EncryptionUseCase() (contentUseCase.EncryptionUseCase, error) {
	var err error
	c.encryptionUseCaseInit.Do(func() {
		c.encryptionUseCase, err = c.initEncryptionUseCase()
		if err != nil {
			c.initErrors["encryptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.encryptionUseCase, nil
}

// DecryptionUseCase returns the decryption use case.
func (c *Container) DecryptionUseCase() (contentUseCase.DecryptionUseCase, error) {
	var err error
	c.decryptionUseCaseInit.Do(func() {
		c.decryptionUseCase, err = c.initDecryptionUseCase()
		if err != nil {
			c.initErrors["decryptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["decryptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.decryptionUseCase, nil
}

// ArticleContentUseCase returns the use case that publishes and serves stored articles.
func (c *Container) ArticleContentUseCase() (contentUseCase.ArticleContentUseCase, error) {
	var err error
	c.articleContentUseCaseInit.Do(func() {
		c.articleContentUseCase, err = c.initArticleContentUseCase()
		if err != nil {
			c.initErrors["articleContentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleContentUseCase"]; exists {
		return nil, storedErr
	}
	return c.articleContentUseCase, nil
}

// ContentHandler returns the content HTTP handler.
func (c *Container) ContentHandler() (*contentHTTP.ContentHandler, error) {
	var err error
	c.contentHandlerInit.Do(func() {
		c.contentHandler, err = c.initContentHandler()
		if err != nil {
			c.initErrors["contentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentHandler"]; exists {
		return nil, storedErr
	}
	return c.contentHandler, nil
}

// initArticleContentRepository creates the content store based on the database driver.
func (c *Container) initArticleContentRepository() (contentUseCase.ArticleContentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for article content repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return contentRepository.NewPostgreSQLArticleContentRepository(db), nil
	case database.DriverMySQL:
		return contentRepository.NewMySQLArticleContentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPublisherResolver builds the resolver chain: the canonical ledger record, the
// alternate ledger record, the content store and finally the configured fallback table.
func (c *Container) initPublisherResolver() (contentService.PublisherResolver, error) {
	articleReader, err := c.ArticleReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get article reader for publisher resolver: %w", err)
	}

	repository, err := c.ArticleContentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get article content repository for publisher resolver: %w", err)
	}

	fallbacks, err := c.config.PublisherFallbackMap()
	if err != nil {
		return nil, fmt.Errorf("failed to parse publisher fallbacks: %w", err)
	}

	resolvers := append(ledgerPublisherResolvers(articleReader),
		contentService.NamedResolver{
			Name:     "content_store",
			Resolver: contentService.NewStorePublisherResolver(repository),
		},
		contentService.NamedResolver{
			Name:     "static_table",
			Resolver: contentService.NewStaticPublisherResolver(fallbacks),
		},
	)
	return contentService.NewChainPublisherResolver(c.Logger(), resolvers...), nil
}

// ledgerPublisherResolvers returns the ledger steps of the resolver chain. Publish checks
// the requested publisher against these alone.
func ledgerPublisherResolvers(articleReader ledger.ArticleReader) []contentService.NamedResolver {
	return []contentService.NamedResolver{
		{
			Name:     "ledger_article",
			Resolver: contentService.NewLedgerPublisherResolver(articleReader),
		},
		{
			Name:     "ledger_record",
			Resolver: contentService.NewLedgerRecordPublisherResolver(articleReader),
		},
	}
}

// initEncryptionUseCase creates the encryption use case with all its dependencies.
func (c *Container) initEncryptionUseCase() (contentUseCase.EncryptionUseCase, error) {
	articleReader, err := c.ArticleReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get article reader for encryption use case: %w", err)
	}

	baseUseCase := contentUseCase.NewEncryptionUseCase(
		c.Cipher(),
		c.KeyDerivation(),
		articleReader,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for encryption use case: %w", err)
		}
		return contentUseCase.NewEncryptionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initDecryptionUseCase creates the decryption use case with all its dependencies.
func (c *Container) initDecryptionUseCase() (contentUseCase.DecryptionUseCase, error) {
	resolver, err := c.PublisherResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher resolver for decryption use case: %w", err)
	}

	baseUseCase := contentUseCase.NewDecryptionUseCase(
		c.Cipher(),
		c.KeyDerivation(),
		resolver,
		c.DecryptionCache(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for decryption use case: %w", err)
		}
		return contentUseCase.NewDecryptionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initArticleContentUseCase creates the article content use case with all its dependencies.
func (c *Container) initArticleContentUseCase() (contentUseCase.ArticleContentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for article content use case: %w", err)
	}

	repository, err := c.ArticleContentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get article content repository for article content use case: %w", err)
	}

	encryption, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for article content use case: %w", err)
	}

	decryption, err := c.DecryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get decryption use case for article content use case: %w", err)
	}

	access, err := c.AccessUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get access use case for article content use case: %w", err)
	}

	articleReader, err := c.ArticleReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get article reader for article content use case: %w", err)
	}

	baseUseCase := contentUseCase.NewArticleContentUseCase(
		txManager,
		repository,
		encryption,
		decryption,
		access,
		contentService.NewChainPublisherResolver(c.Logger(), ledgerPublisherResolvers(articleReader)...),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for article content use case: %w", err)
		}
		return contentUseCase.NewArticleContentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initContentHandler creates the content HTTP handler with all its dependencies.
func (c *Container) initContentHandler() (*contentHTTP.ContentHandler, error) {
	encryption, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for content handler: %w", err)
	}

	decryption, err := c.DecryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get decryption use case for content handler: %w", err)
	}

	articles, err := c.ArticleContentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get article content use case for content handler: %w", err)
	}

	return contentHTTP.NewContentHandler(encryption, decryption, articles, c.Logger()), nil
}
