package domain

// PurchaseState is the reader's position in the two-phase purchase flow.
//
//	Unowned --buy--> Purchased --burn--> Activated
//
// Owned sits outside the flow: collectible owners never buy or burn. The state is always
// re-derived from the ledger, so a crash between buy and burn leaves the reader in
// Purchased and the next query picks up from there.
type PurchaseState string

const (
	PurchaseStateUnowned   PurchaseState = "unowned"
	PurchaseStatePurchased PurchaseState = "purchased"
	PurchaseStateActivated PurchaseState = "activated"
	PurchaseStateOwned     PurchaseState = "owned"
)

// CanBuy reports whether a buy transaction is the next step.
func (s PurchaseState) CanBuy() bool {
	return s == PurchaseStateUnowned
}

// CanActivate reports whether a burn transaction is the next step.
func (s PurchaseState) CanActivate() bool {
	return s == PurchaseStatePurchased
}

// IsTerminal reports whether the reader can already read the article.
func (s PurchaseState) IsTerminal() bool {
	return s == PurchaseStateActivated || s == PurchaseStateOwned
}

// PurchaseResult reports the outcome of driving the purchase flow.
type PurchaseResult struct {
	State        PurchaseState
	Transactions []*Transaction
	Access       *AccessRecord
}
