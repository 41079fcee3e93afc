package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	"github.com/allisson/paywall/internal/errors"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// DefaultAccessDuration is how long a burned license keeps an article readable.
const DefaultAccessDuration = 24 * time.Hour

// ErrRegenerationNotDue indicates licenses are still available for the article.
var ErrRegenerationNotDue = errors.Wrap(errors.ErrConflict, "license regeneration not due")

type memoryArticle struct {
	article         Article
	canonicalHidden bool
	price           *big.Int
	nftOwners       map[string]uint64
	licenses        map[string][]string
	access          map[string]time.Time
	state           licenseDomain.LicenseState
	tokenSeq        uint64
}

// MemoryLedger is a process-local ledger used for development and tests.
type MemoryLedger struct {
	mu             sync.RWMutex
	now            func() time.Time
	accessDuration time.Duration
	articles       map[uint64]*memoryArticle
	failure        error
}

// MemoryOption configures a MemoryLedger.
type MemoryOption func(*MemoryLedger)

// WithClock sets the clock used for access windows and regeneration times.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryLedger) {
		m.now = now
	}
}

// WithAccessDuration sets how long burned licenses keep access open.
func WithAccessDuration(d time.Duration) MemoryOption {
	return func(m *MemoryLedger) {
		m.accessDuration = d
	}
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger(opts ...MemoryOption) *MemoryLedger {
	m := &MemoryLedger{
		now:            time.Now,
		accessDuration: DefaultAccessDuration,
		articles:       make(map[uint64]*memoryArticle),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddArticle registers an article and returns its id. A zero id is assigned the next one.
func (m *MemoryLedger) AddArticle(article Article, price *big.Int) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if article.ID == 0 {
		article.ID = uint64(len(m.articles)) + 1
		for m.articles[article.ID] != nil {
			article.ID++
		}
	}
	article.Author = cryptoDomain.NormalizeAddress(article.Author)
	if price == nil {
		price = big.NewInt(0)
	}

	m.articles[article.ID] = &memoryArticle{
		article:   article,
		price:     new(big.Int).Set(price),
		nftOwners: make(map[string]uint64),
		licenses:  make(map[string][]string),
		access:    make(map[string]time.Time),
	}
	return article.ID
}

// HideCanonicalAuthor makes GetArticle return an empty author for the article while the
// storage record keeps it, as older registry deployments do.
func (m *MemoryLedger) HideCanonicalAuthor(articleID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a := m.articles[articleID]; a != nil {
		a.canonicalHidden = true
	}
}

// MintNFT gives owner count collectibles of the article.
func (m *MemoryLedger) MintNFT(articleID uint64, owner string, count uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[articleID]
	if !ok {
		return ErrArticleNotFound
	}
	a.nftOwners[cryptoDomain.NormalizeAddress(owner)] += count
	return nil
}

// IssueLicenses gives holder count unburned licenses and returns their token ids.
func (m *MemoryLedger) IssueLicenses(articleID uint64, holder string, count int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[articleID]
	if !ok {
		return nil, ErrArticleNotFound
	}
	return a.issue(cryptoDomain.NormalizeAddress(holder), count), nil
}

// OpenAccess sets a burned-license window for the reader directly.
func (m *MemoryLedger) OpenAccess(articleID uint64, reader string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.articles[articleID]
	if !ok {
		return ErrArticleNotFound
	}
	a.access[cryptoDomain.NormalizeAddress(reader)] = expiresAt
	return nil
}

// SetFailure makes every ledger call fail with err until cleared with nil.
func (m *MemoryLedger) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// GetArticle reads the canonical article record.
func (m *MemoryLedger) GetArticle(_ context.Context, articleID uint64) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	article := a.snapshot()
	if a.canonicalHidden {
		article.Author = ""
	}
	return article, nil
}

// GetArticleRecord reads the storage record for the article.
func (m *MemoryLedger) GetArticleRecord(_ context.Context, articleID uint64) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	return a.snapshot(), nil
}

// ArticleCount returns the number of registered articles.
func (m *MemoryLedger) ArticleCount(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failure != nil {
		return 0, m.failure
	}
	return uint64(len(m.articles)), nil
}

// NFTBalance returns how many collectibles of the article owner holds.
func (m *MemoryLedger) NFTBalance(_ context.Context, articleID uint64, owner string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return 0, err
	}
	return a.nftOwners[cryptoDomain.NormalizeAddress(owner)], nil
}

// ActiveAccess returns the reader's burned-license window.
func (m *MemoryLedger) ActiveAccess(
	_ context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	expiresAt, ok := a.access[cryptoDomain.NormalizeAddress(reader)]
	if !ok {
		return &licenseDomain.AccessWindow{}, nil
	}
	return &licenseDomain.AccessWindow{Active: m.now().Before(expiresAt), ExpiresAt: expiresAt}, nil
}

// UnburnedLicenses returns the reader's unburned license balance.
func (m *MemoryLedger) UnburnedLicenses(
	_ context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.LicenseHolding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	tokens := a.licenses[cryptoDomain.NormalizeAddress(reader)]
	holding := &licenseDomain.LicenseHolding{Balance: uint64(len(tokens))}
	if len(tokens) > 0 {
		holding.TokenID = tokens[0]
	}
	return holding, nil
}

// CurrentPrice returns the license price in wei.
func (m *MemoryLedger) CurrentPrice(_ context.Context, articleID uint64) (*big.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(a.price), nil
}

// LicenseHolders lists accounts with at least one unburned license, sorted.
func (m *MemoryLedger) LicenseHolders(_ context.Context, articleID uint64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	holders := make([]string, 0, len(a.licenses))
	for holder, tokens := range a.licenses {
		if len(tokens) > 0 {
			holders = append(holders, holder)
		}
	}
	sort.Strings(holders)
	return holders, nil
}

// LicenseState returns the article's license supply.
func (m *MemoryLedger) LicenseState(_ context.Context, articleID uint64) (*licenseDomain.LicenseState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	state := a.state
	return &state, nil
}

// Buy moves one license from seller to buyer.
func (m *MemoryLedger) Buy(
	_ context.Context,
	articleID uint64,
	buyer, seller string,
	value *big.Int,
) (*licenseDomain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	if value == nil || value.Cmp(a.price) < 0 {
		return nil, ErrInsufficientPayment
	}

	buyer = cryptoDomain.NormalizeAddress(buyer)
	seller = cryptoDomain.NormalizeAddress(seller)
	tokens := a.licenses[seller]
	if len(tokens) == 0 {
		return nil, ErrNoUnburnedLicense
	}

	a.licenses[seller] = tokens[1:]
	a.licenses[buyer] = append(a.licenses[buyer], tokens[0])

	return newTransaction(articleID, value), nil
}

// BurnForAccess burns one of the reader's licenses and opens an access window.
func (m *MemoryLedger) BurnForAccess(
	_ context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}

	reader = cryptoDomain.NormalizeAddress(reader)
	tokens := a.licenses[reader]
	if len(tokens) == 0 {
		return nil, ErrNoUnburnedLicense
	}

	a.licenses[reader] = tokens[1:]
	a.access[reader] = m.now().Add(m.accessDuration)
	if a.state.ActiveLicenses > 0 {
		a.state.ActiveLicenses--
	}

	return newTransaction(articleID, nil), nil
}

// ShouldRegenerate reports whether every issued license has been burned.
func (m *MemoryLedger) ShouldRegenerate(_ context.Context, articleID uint64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return false, err
	}
	return a.state.ActiveLicenses == 0, nil
}

// Regenerate issues a new license edition to the article author.
func (m *MemoryLedger) Regenerate(_ context.Context, articleID uint64) (*licenseDomain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.lookup(articleID)
	if err != nil {
		return nil, err
	}
	if a.state.ActiveLicenses > 0 {
		return nil, ErrRegenerationNotDue
	}

	supply := a.article.NFTCount * a.article.ReaderLicenseRatio
	if supply == 0 {
		supply = 1
	}
	a.issue(a.article.Author, int(supply))
	a.state.EditionNumber++
	a.state.LastRegenerationTime = m.now()

	return newTransaction(articleID, nil), nil
}

// lookup must be called with m.mu held.
func (m *MemoryLedger) lookup(articleID uint64) (*memoryArticle, error) {
	if m.failure != nil {
		return nil, m.failure
	}
	a, ok := m.articles[articleID]
	if !ok {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

func (a *memoryArticle) snapshot() *Article {
	article := a.article
	if a.article.NFTPrice != nil {
		article.NFTPrice = new(big.Int).Set(a.article.NFTPrice)
	}
	return &article
}

func (a *memoryArticle) issue(holder string, count int) []string {
	ids := make([]string, 0, count)
	for range count {
		a.tokenSeq++
		id := fmt.Sprintf("%d%06d", a.article.ID, a.tokenSeq)
		ids = append(ids, id)
	}
	a.licenses[holder] = append(a.licenses[holder], ids...)
	a.state.TotalGenerated += uint64(count)
	a.state.ActiveLicenses += uint64(count)
	return ids
}

func newTransaction(articleID uint64, value *big.Int) *licenseDomain.Transaction {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return &licenseDomain.Transaction{Hash: "0x" + hex.EncodeToString(buf), ArticleID: articleID, Value: value}
}
