package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	cryptoDomain "github.com/allisson/paywall/internal/crypto/domain"
	"github.com/allisson/paywall/internal/errors"
	licenseDomain "github.com/allisson/paywall/internal/license/domain"
)

// maxResponseBytes bounds gateway response bodies.
const maxResponseBytes = 1 << 20

// GatewayConfig configures the contract gateway client.
type GatewayConfig struct {
	BaseURL         string
	ArticleContract string
	LicenseContract string
	SignerAddress   string
	APIKey          string
	Timeout         time.Duration
}

// GatewayClient talks to a contract gateway that exposes read-only calls on /contract/query
// and signed transactions on /contract/tx. It implements ArticleReader and LicenseLedger.
type GatewayClient struct {
	cfg    GatewayConfig
	client *http.Client
}

// NewGatewayClient creates a gateway client. A zero timeout defaults to 15 seconds.
func NewGatewayClient(cfg GatewayConfig) *GatewayClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &GatewayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type contractCall struct {
	Contract string `json:"contract"`
	Caller   string `json:"caller,omitempty"`
	FuncName string `json:"funcName"`
	FuncArgs []any  `json:"funcArgs"`
	Value    string `json:"value,omitempty"`
}

type queryResult struct {
	Output json.RawMessage `json:"output"`
}

type txResult struct {
	TxHash string `json:"txHash"`
}

type gatewayArticle struct {
	Author             string `json:"author"`
	Title              string `json:"title"`
	Summary            string `json:"summary"`
	Category           string `json:"category"`
	Location           string `json:"location"`
	PublishedAt        int64  `json:"publishedAt"`
	NFTCount           uint64 `json:"nftCount"`
	NFTPrice           string `json:"nftPrice"`
	ReaderLicenseRatio uint64 `json:"readerLicenseRatio"`
}

type gatewayAccess struct {
	Active    bool  `json:"active"`
	ExpiresAt int64 `json:"expiresAt"`
}

type gatewayHolding struct {
	Balance uint64 `json:"balance"`
	TokenID string `json:"tokenId"`
}

type gatewayLicenseState struct {
	EditionNumber        uint64 `json:"editionNumber"`
	TotalGenerated       uint64 `json:"totalGenerated"`
	ActiveLicenses       uint64 `json:"activeLicenses"`
	LastRegenerationTime int64  `json:"lastRegenerationTime"`
}

// GetArticle reads the canonical article record.
func (g *GatewayClient) GetArticle(ctx context.Context, articleID uint64) (*Article, error) {
	return g.readArticle(ctx, "getArticle", articleID)
}

// GetArticleRecord reads the public storage mapping for the article.
func (g *GatewayClient) GetArticleRecord(ctx context.Context, articleID uint64) (*Article, error) {
	return g.readArticle(ctx, "articles", articleID)
}

// ArticleCount returns the number of registered articles.
func (g *GatewayClient) ArticleCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := g.query(ctx, g.cfg.ArticleContract, "articleCount", nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// NFTBalance returns how many article collectibles the owner holds.
func (g *GatewayClient) NFTBalance(ctx context.Context, articleID uint64, owner string) (uint64, error) {
	var balance uint64
	args := []any{articleID, cryptoDomain.NormalizeAddress(owner)}
	if err := g.query(ctx, g.cfg.LicenseContract, "nftBalanceOf", args, &balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// ActiveAccess returns the reader's burned-license window.
func (g *GatewayClient) ActiveAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.AccessWindow, error) {
	var out gatewayAccess
	args := []any{articleID, cryptoDomain.NormalizeAddress(reader)}
	if err := g.query(ctx, g.cfg.LicenseContract, "hasActiveAccess", args, &out); err != nil {
		return nil, err
	}

	window := &licenseDomain.AccessWindow{Active: out.Active}
	if out.ExpiresAt > 0 {
		window.ExpiresAt = time.Unix(out.ExpiresAt, 0).UTC()
	}
	return window, nil
}

// UnburnedLicenses returns the reader's unburned license balance.
func (g *GatewayClient) UnburnedLicenses(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.LicenseHolding, error) {
	var out gatewayHolding
	args := []any{articleID, cryptoDomain.NormalizeAddress(reader)}
	if err := g.query(ctx, g.cfg.LicenseContract, "unburnedLicenses", args, &out); err != nil {
		return nil, err
	}
	return &licenseDomain.LicenseHolding{Balance: out.Balance, TokenID: out.TokenID}, nil
}

// CurrentPrice returns the license price in wei.
func (g *GatewayClient) CurrentPrice(ctx context.Context, articleID uint64) (*big.Int, error) {
	var out string
	if err := g.query(ctx, g.cfg.LicenseContract, "currentPrice", []any{articleID}, &out); err != nil {
		return nil, err
	}
	return parseWei(out)
}

// LicenseHolders lists accounts holding at least one unburned license.
func (g *GatewayClient) LicenseHolders(ctx context.Context, articleID uint64) ([]string, error) {
	var holders []string
	if err := g.query(ctx, g.cfg.LicenseContract, "licenseHolders", []any{articleID}, &holders); err != nil {
		return nil, err
	}
	return holders, nil
}

// LicenseState returns the article's license supply.
func (g *GatewayClient) LicenseState(ctx context.Context, articleID uint64) (*licenseDomain.LicenseState, error) {
	var out gatewayLicenseState
	if err := g.query(ctx, g.cfg.LicenseContract, "licenseState", []any{articleID}, &out); err != nil {
		return nil, err
	}

	state := &licenseDomain.LicenseState{
		EditionNumber:  out.EditionNumber,
		TotalGenerated: out.TotalGenerated,
		ActiveLicenses: out.ActiveLicenses,
	}
	if out.LastRegenerationTime > 0 {
		state.LastRegenerationTime = time.Unix(out.LastRegenerationTime, 0).UTC()
	}
	return state, nil
}

// Buy submits a license purchase signed by the buyer.
func (g *GatewayClient) Buy(
	ctx context.Context,
	articleID uint64,
	buyer, seller string,
	value *big.Int,
) (*licenseDomain.Transaction, error) {
	if value == nil || value.Sign() <= 0 {
		return nil, ErrInsufficientPayment
	}

	call := contractCall{
		Contract: g.cfg.LicenseContract,
		Caller:   cryptoDomain.NormalizeAddress(buyer),
		FuncName: "buyLicense",
		FuncArgs: []any{articleID, cryptoDomain.NormalizeAddress(seller)},
		Value:    value.String(),
	}
	return g.tx(ctx, articleID, call, value)
}

// BurnForAccess submits a burn signed by the reader.
func (g *GatewayClient) BurnForAccess(
	ctx context.Context,
	articleID uint64,
	reader string,
) (*licenseDomain.Transaction, error) {
	call := contractCall{
		Contract: g.cfg.LicenseContract,
		Caller:   cryptoDomain.NormalizeAddress(reader),
		FuncName: "burnForAccess",
		FuncArgs: []any{articleID},
	}
	return g.tx(ctx, articleID, call, nil)
}

// ShouldRegenerate reports whether the ledger wants a new license edition.
func (g *GatewayClient) ShouldRegenerate(ctx context.Context, articleID uint64) (bool, error) {
	var out bool
	if err := g.query(ctx, g.cfg.LicenseContract, "shouldRegenerate", []any{articleID}, &out); err != nil {
		return false, err
	}
	return out, nil
}

// Regenerate submits a regeneration signed by the service signer.
func (g *GatewayClient) Regenerate(ctx context.Context, articleID uint64) (*licenseDomain.Transaction, error) {
	call := contractCall{
		Contract: g.cfg.LicenseContract,
		Caller:   g.cfg.SignerAddress,
		FuncName: "regenerateLicenses",
		FuncArgs: []any{articleID},
	}
	return g.tx(ctx, articleID, call, nil)
}

func (g *GatewayClient) readArticle(ctx context.Context, funcName string, articleID uint64) (*Article, error) {
	var out *gatewayArticle
	if err := g.query(ctx, g.cfg.ArticleContract, funcName, []any{articleID}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrArticleNotFound
	}

	article := &Article{
		ID:                 articleID,
		Author:             out.Author,
		Title:              out.Title,
		Summary:            out.Summary,
		Category:           out.Category,
		Location:           out.Location,
		NFTCount:           out.NFTCount,
		ReaderLicenseRatio: out.ReaderLicenseRatio,
	}
	if out.PublishedAt > 0 {
		article.PublishedAt = time.Unix(out.PublishedAt, 0).UTC()
	}
	if out.NFTPrice != "" {
		price, err := parseWei(out.NFTPrice)
		if err != nil {
			return nil, err
		}
		article.NFTPrice = price
	}
	return article, nil
}

func (g *GatewayClient) query(ctx context.Context, contract, funcName string, args []any, dst any) error {
	if args == nil {
		args = []any{}
	}
	call := contractCall{Contract: contract, FuncName: funcName, FuncArgs: args}

	var result queryResult
	if err := g.do(ctx, "/contract/query", call, &result); err != nil {
		return err
	}
	if len(result.Output) == 0 {
		result.Output = json.RawMessage("null")
	}
	if err := json.Unmarshal(result.Output, dst); err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "decode %s output: %v", funcName, err)
	}
	return nil
}

func (g *GatewayClient) tx(
	ctx context.Context,
	articleID uint64,
	call contractCall,
	value *big.Int,
) (*licenseDomain.Transaction, error) {
	var result txResult
	if err := g.do(ctx, "/contract/tx", call, &result); err != nil {
		return nil, err
	}
	if result.TxHash == "" {
		return nil, errors.Wrapf(errors.ErrUnavailable, "%s returned no transaction hash", call.FuncName)
	}
	return &licenseDomain.Transaction{Hash: result.TxHash, ArticleID: articleID, Value: value}, nil
}

func (g *GatewayClient) do(ctx context.Context, path string, call contractCall, dst any) error {
	body, err := json.Marshal(call)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "encode %s call: %v", call.FuncName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "build %s request: %v", call.FuncName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "call %s: %v", call.FuncName, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "read %s response: %v", call.FuncName, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrArticleNotFound
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrInsufficientPayment
	case resp.StatusCode == http.StatusConflict:
		return ErrNoUnburnedLicense
	case resp.StatusCode != http.StatusOK:
		return errors.Wrapf(
			errors.ErrUnavailable,
			"%s failed with status %d: %s",
			call.FuncName,
			resp.StatusCode,
			strings.TrimSpace(string(respBody)),
		)
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		return errors.Wrapf(errors.ErrUnavailable, "decode %s response: %v", call.FuncName, err)
	}
	return nil
}

func parseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.Wrapf(errors.ErrUnavailable, "invalid wei amount %q", s)
	}
	return v, nil
}
