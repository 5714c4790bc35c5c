package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/zyraa/storefront/internal/domain"
	"github.com/zyraa/storefront/internal/pricing"
	"github.com/zyraa/storefront/internal/storage"
	"github.com/zyraa/storefront/internal/telemetry"
)

// syncTimeout bounds every best-effort write to the persistence bridge.
const syncTimeout = 2 * time.Second

// CartService provides business logic for shopping cart operations.
type CartService interface {
	// Load restores the cart from the persistence bridge. An absent
	// document yields an empty cart, not an error.
	Load(ctx context.Context) error

	// AddItem inserts a line item, or merges quantities when a line with
	// the same merge key already exists. A zero quantity defaults to 1.
	AddItem(ctx context.Context, item domain.LineItem) (*domain.CartSummary, error)

	// UpdateQuantity replaces a line's quantity. A quantity of zero or
	// less removes the line; an unknown id is a no-op.
	UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartSummary, error)

	// RemoveItem deletes the line with that id; no-op if absent.
	RemoveItem(ctx context.Context, id string) (*domain.CartSummary, error)

	// Clear empties the cart unconditionally.
	Clear(ctx context.Context) error

	// Summary returns the cart's lines with derived and priced totals.
	Summary() *domain.CartSummary

	// Flush writes the current cart state to the persistence bridge and
	// reports the outcome, for callers that want durability confirmed.
	Flush(ctx context.Context) error
}

// cartDocument is the serialized form written to the persistence bridge.
type cartDocument struct {
	Items []domain.LineItem `json:"items"`
}

type cartService struct {
	mu             sync.Mutex
	items          []domain.LineItem
	index          map[string]int // merge key -> position in items
	mergeByVariant bool

	store   storage.Store
	pricing *pricing.Calculator
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewCartService creates a cart store synchronized to the given
// persistence bridge. mergeByVariant widens the line-merge key from
// product id to id+variant.
func NewCartService(store storage.Store, calc *pricing.Calculator, logger *slog.Logger, metrics *telemetry.BusinessMetrics, mergeByVariant bool) CartService {
	return &cartService{
		index:          make(map[string]int),
		mergeByVariant: mergeByVariant,
		store:          store,
		pricing:        calc,
		logger:         logger,
		metrics:        metrics,
	}
}

// mergeKey derives the identity under which line items merge. The legacy
// storefront merged purely on product id, silently collapsing different
// variants of the same product into one line; that stays the default, but
// the choice is an explicit parameter now.
func (s *cartService) mergeKey(item domain.LineItem) string {
	if s.mergeByVariant && item.Variant != "" {
		return item.ID + "|" + item.Variant
	}
	return item.ID
}

// Load restores the cart from the persistence bridge.
func (s *cartService) Load(ctx context.Context) error {
	data, found, err := s.store.Get(ctx, storage.KeyCart)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.load", "failed to read cart from store")
	}
	if !found {
		return nil
	}

	var doc cartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.load", "failed to decode persisted cart")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[string]int)

	// Replay through the merge path so a hand-edited or pre-migration
	// document still ends up honoring the uniqueness invariant.
	for _, item := range doc.Items {
		if item.ID == "" || item.Quantity < 1 {
			s.logger.Warn("dropping invalid persisted cart line", "id", item.ID, "quantity", item.Quantity)
			continue
		}
		s.addLocked(item)
	}

	return nil
}

// addLocked merges or appends an item. Caller holds the lock.
func (s *cartService) addLocked(item domain.LineItem) {
	key := s.mergeKey(item)
	if i, ok := s.index[key]; ok {
		// Existing line wins on price and display fields; the unit
		// price is fixed at first insertion.
		s.items[i].Quantity += item.Quantity
		return
	}

	s.index[key] = len(s.items)
	s.items = append(s.items, item)
}

// findLocked resolves an id to a line position. The id is matched as a
// merge key first, then as a bare product id. Returns -1 when absent.
func (s *cartService) findLocked(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// removeLocked deletes the line at position i and reindexes.
func (s *cartService) removeLocked(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)

	s.index = make(map[string]int, len(s.items))
	for j, item := range s.items {
		s.index[s.mergeKey(item)] = j
	}
}

// AddItem inserts or merges a line item.
func (s *cartService) AddItem(ctx context.Context, item domain.LineItem) (*domain.CartSummary, error) {
	if item.ID == "" {
		return nil, domain.WrapError(domain.ErrInvalidLineItem, domain.EINVALID, "cart.add", domain.ErrInvalidLineItem.Message)
	}
	if item.Quantity < 0 {
		return nil, domain.WrapError(domain.ErrInvalidQuantity, domain.EINVALID, "cart.add", domain.ErrInvalidQuantity.Message)
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	s.addLocked(item)
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.metrics.RecordCartUpdate("add")
	s.metrics.RecordItemsAdded(item.Quantity)
	s.sync(ctx)

	return summary, nil
}

// UpdateQuantity replaces a line's quantity; zero or negative removes it.
func (s *cartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartSummary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, id)
	}

	s.mu.Lock()
	if i := s.findLocked(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.metrics.RecordCartUpdate("update_quantity")
	s.sync(ctx)

	return summary, nil
}

// RemoveItem deletes the line with that id; no-op if absent.
func (s *cartService) RemoveItem(ctx context.Context, id string) (*domain.CartSummary, error) {
	s.mu.Lock()
	if i := s.findLocked(id); i >= 0 {
		s.removeLocked(i)
	}
	summary := s.summaryLocked()
	s.mu.Unlock()

	s.metrics.RecordCartUpdate("remove")
	s.sync(ctx)

	return summary, nil
}

// Clear empties the cart unconditionally.
func (s *cartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.index = make(map[string]int)
	s.mu.Unlock()

	s.sync(ctx)
	return nil
}

// Summary returns the cart's lines with derived and priced totals.
func (s *cartService) Summary() *domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// summaryLocked builds a summary snapshot. Caller holds the lock.
func (s *cartService) summaryLocked() *domain.CartSummary {
	subtotal := domain.ZeroAmount
	count := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}

	quote := s.pricing.Quote(subtotal)

	return &domain.CartSummary{
		Items:    domain.CloneItems(s.items),
		Count:    count,
		Subtotal: quote.Subtotal,
		Shipping: quote.Shipping,
		Tax:      quote.Tax,
		Total:    quote.Total,
	}
}

// Flush writes the current cart state to the bridge, surfacing failures.
func (s *cartService) Flush(ctx context.Context) error {
	s.mu.Lock()
	doc := cartDocument{Items: domain.CloneItems(s.items)}
	s.mu.Unlock()

	data, err := json.Marshal(doc)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.flush", "failed to encode cart")
	}

	if err := s.store.Put(ctx, storage.KeyCart, data); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "cart.flush", "failed to write cart to store")
	}

	return nil
}

// sync is the best-effort write after a mutation. Failures are logged and
// counted, never surfaced: durability is advisory and the in-memory state
// stays authoritative.
func (s *cartService) sync(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), syncTimeout)
	defer cancel()

	if err := s.Flush(ctx); err != nil {
		s.logger.Warn("cart sync failed", "error", err)
		s.metrics.RecordSyncFailure(storage.KeyCart)
	}
}
