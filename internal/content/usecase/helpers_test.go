package usecase

import (
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/allisson/paywall/internal/content/service"
	cryptoService "github.com/allisson/paywall/internal/crypto/service"
	"github.com/allisson/paywall/internal/ledger"
)

const (
	publisherAddress = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	readerAddress    = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
	otherReader      = "0x4B20993Bc481177ec7E8f571ceCaE8A9e22C02db"
	articleText      = "Layer-2 rollups batch transactions off-chain and post proofs on-chain."
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type testStack struct {
	ledger     *ledger.MemoryLedger
	cache      *service.DecryptionCache
	clock      *time.Time
	encryption EncryptionUseCase
	decryption DecryptionUseCase
	publishers service.PublisherResolver
	fallbacks  map[uint64]string
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStack wires real crypto, an in-memory ledger holding article 15 by the
// publisher, and a cache driven by a manual clock.
func newTestStack(t *testing.T, fallbacks map[uint64]string) *testStack {
	t.Helper()

	now := testNow
	clock := &now
	memory := ledger.NewMemoryLedger(ledger.WithClock(func() time.Time { return *clock }))
	memory.AddArticle(ledger.Article{ID: 15, Author: publisherAddress, NFTCount: 1, ReaderLicenseRatio: 1}, big.NewInt(100))

	logger := newTestLogger()
	cipher := cryptoService.NewChaCha20Poly1305()
	kdf := cryptoService.NewPBKDF2KeyDerivation("")
	cache := service.NewDecryptionCache(service.DefaultCacheTTL, func() time.Time { return *clock })

	resolver := service.NewChainPublisherResolver(logger,
		service.NamedResolver{Name: "ledger", Resolver: service.NewLedgerPublisherResolver(memory)},
		service.NamedResolver{Name: "ledger_record", Resolver: service.NewLedgerRecordPublisherResolver(memory)},
		service.NamedResolver{Name: "static", Resolver: service.NewStaticPublisherResolver(fallbacks)},
	)

	return &testStack{
		ledger:     memory,
		cache:      cache,
		clock:      clock,
		encryption: NewEncryptionUseCase(cipher, kdf, memory, logger),
		decryption: NewDecryptionUseCase(cipher, kdf, resolver, cache, logger),
		publishers: service.NewChainPublisherResolver(logger,
			service.NamedResolver{Name: "ledger", Resolver: service.NewLedgerPublisherResolver(memory)},
			service.NamedResolver{Name: "ledger_record", Resolver: service.NewLedgerRecordPublisherResolver(memory)},
		),
		fallbacks: fallbacks,
	}
}
