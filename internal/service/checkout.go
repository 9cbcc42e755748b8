package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Beka01247/restaurant-client/internal/currency"
	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/gateway"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/repo"
	"github.com/Beka01247/restaurant-client/internal/session"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	opInitialize = "initialize"
	opUpdateItem = "update_item"
	opSubmit     = "submit"
	opCancel     = "cancel"
	opRefresh    = "refresh"
)

// CheckoutService is the per-user cart/checkout workflow:
//
//	NONE -> DRAFT -> SUBMITTED -> (PROCESSED | CANCELLED)
//
// Totals are always the server's totalPrice; nothing is recomputed locally.
type CheckoutService struct {
	tracker

	repo    repo.CheckoutRepository
	session *session.Session
	events  publisher
	logger  *zap.SugaredLogger

	autoMu sync.Mutex
	auto   *initLatch

	cartID    domain.ID
	items     []domain.CartItem
	checkout  *domain.Checkout
	submitted bool
}

// initLatch is one armed AutoInitialize and its result.
type initLatch struct {
	once sync.Once
	err  error
}

func NewCheckoutService(
	checkoutRepo repo.CheckoutRepository,
	sess *session.Session,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		repo:    checkoutRepo,
		session: sess,
		events:  publisher{broker: broker, logger: logger, now: time.Now},
		logger:  logger,
		auto:    &initLatch{},
	}
}

// Initialize resolves the user's checkout, creating one from the cart when
// none exists yet.
func (s *CheckoutService) Initialize(ctx context.Context) error {
	gen, err := s.begin(opInitialize)
	if err != nil {
		return err
	}
	defer s.end(opInitialize, gen)

	userID, err := s.userID(ctx)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to resolve current user: %w", err))
	}

	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil && !gateway.IsNotFound(err) {
		return s.fail(gen, fmt.Errorf("failed to look up checkout: %w", err))
	}
	if err != nil {
		existing = nil
	}

	items, err := s.repo.CartItems(ctx, userID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch cart items: %w", err))
	}

	if existing != nil {
		details, err := s.repo.GetByID(ctx, existing.ID)
		if err != nil {
			return s.fail(gen, fmt.Errorf("failed to fetch checkout %s: %w", existing.ID, err))
		}
		s.logger.Infow("resumed existing checkout", "checkout_id", details.ID, "user_id", userID)
		return s.apply(gen, items, details)
	}

	if len(items) == 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.currentLocked(gen); err != nil {
			return err
		}
		s.resetLocked()
		return s.failLocked(gen, domain.ErrCartEmpty)
	}

	created, err := s.repo.Create(ctx, items[0].CartID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to create checkout: %w", err))
	}

	details, err := s.repo.GetByID(ctx, created.ID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch checkout %s: %w", created.ID, err))
	}

	s.logger.Infow("created checkout", "checkout_id", details.ID, "cart_id", details.CartID, "user_id", userID)
	s.events.checkout(ctx, domain.EventCheckoutCreated, details, s.session.Username())

	return s.apply(gen, items, details)
}

// AutoInitialize runs Initialize at most once until the next Reset. Repeated
// and concurrent calls wait for that run and return its result.
func (s *CheckoutService) AutoInitialize(ctx context.Context) error {
	s.autoMu.Lock()
	latch := s.auto
	s.autoMu.Unlock()

	latch.once.Do(func() {
		latch.err = s.Initialize(ctx)
	})
	return latch.err
}

// UpdateItemQuantity sends a quantity delta for one cart item and then
// resynchronizes items and details with the server.
func (s *CheckoutService) UpdateItemQuantity(ctx context.Context, itemID domain.ID, delta int) error {
	if delta == 0 {
		return s.reject(domain.ErrZeroDelta)
	}

	s.mu.Lock()
	cartID, checkout, submitted := s.cartID, s.checkout, s.submitted
	s.mu.Unlock()

	switch {
	case checkout == nil || cartID.IsZero():
		return s.reject(domain.ErrNoCheckout)
	case submitted || checkout.IsSubmitted:
		return s.reject(domain.ErrCheckoutSubmitted)
	}

	gen, err := s.begin(opUpdateItem)
	if err != nil {
		return err
	}
	defer s.end(opUpdateItem, gen)

	updateErr := s.repo.UpdateItemQuantity(ctx, cartID, itemID, delta)
	if updateErr != nil {
		s.logger.Warnw("failed to update item quantity", "cart_id", cartID, "item_id", itemID, "delta", delta, "error", updateErr)
	}

	if err := s.resync(ctx, gen, checkout.ID); err != nil {
		return err
	}
	if updateErr != nil {
		return s.fail(gen, fmt.Errorf("failed to update item quantity: %w", updateErr))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.success = "Item quantity updated"
	return nil
}

func (s *CheckoutService) SubmitCheckout(ctx context.Context) error {
	s.mu.Lock()
	checkout, submitted := s.checkout, s.submitted
	s.mu.Unlock()

	switch {
	case checkout == nil:
		return s.reject(domain.ErrNoCheckout)
	case submitted || checkout.IsSubmitted:
		return s.reject(domain.ErrCheckoutSubmitted)
	}

	gen, err := s.begin(opSubmit)
	if err != nil {
		return err
	}
	defer s.end(opSubmit, gen)

	if err := s.repo.Submit(ctx, checkout.ID); err != nil {
		return s.fail(gen, fmt.Errorf("failed to submit checkout: %w", err))
	}

	details, err := s.repo.GetByID(ctx, checkout.ID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch checkout %s: %w", checkout.ID, err))
	}

	s.events.checkout(ctx, domain.EventCheckoutSubmitted, details, s.session.Username())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.checkout = details
	// the server accepted the submit; never go back to editable
	s.submitted = true
	s.errMsg = ""
	s.success = "Checkout submitted"
	return nil
}

// CancelCheckout deletes the checkout server-side after confirmation and
// returns the workflow to NONE.
func (s *CheckoutService) CancelCheckout(ctx context.Context, c Confirmer) error {
	s.mu.Lock()
	checkout := s.checkout
	s.mu.Unlock()

	if checkout == nil {
		return s.reject(domain.ErrNoCheckout)
	}
	if !confirmed(ctx, c, promptCancelCheckout) {
		return s.reject(domain.ErrNotConfirmed)
	}

	gen, err := s.begin(opCancel)
	if err != nil {
		return err
	}
	defer s.end(opCancel, gen)

	if err := s.repo.Cancel(ctx, checkout.ID); err != nil {
		return s.fail(gen, fmt.Errorf("failed to cancel checkout: %w", err))
	}

	s.logger.Infow("cancelled checkout", "checkout_id", checkout.ID)
	s.events.checkout(ctx, domain.EventCheckoutCancelled, checkout, s.session.Username())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.resetLocked()
	s.errMsg = ""
	s.success = "Checkout cancelled"
	return nil
}

// Refresh refetches items and details of the current checkout.
func (s *CheckoutService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	checkout := s.checkout
	s.mu.Unlock()

	if checkout == nil {
		return s.reject(domain.ErrNoCheckout)
	}

	gen, err := s.begin(opRefresh)
	if err != nil {
		return err
	}
	defer s.end(opRefresh, gen)

	return s.resync(ctx, gen, checkout.ID)
}

// Reset drops all local state and re-arms AutoInitialize. It runs when the
// session is cleared; calls still in flight finish without touching the
// new state.
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	s.invalidateLocked()
	s.resetLocked()
	s.mu.Unlock()

	s.autoMu.Lock()
	s.auto = &initLatch{}
	s.autoMu.Unlock()
}

func (s *CheckoutService) resync(ctx context.Context, gen uint64, checkoutID domain.ID) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to resolve current user: %w", err))
	}

	items, err := s.repo.CartItems(ctx, userID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch cart items: %w", err))
	}

	details, err := s.repo.GetByID(ctx, checkoutID)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch checkout %s: %w", checkoutID, err))
	}

	return s.apply(gen, items, details)
}

func (s *CheckoutService) apply(gen uint64, items []domain.CartItem, details *domain.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.currentLocked(gen); err != nil {
		return err
	}

	s.items = items
	s.checkout = details
	switch {
	case !details.CartID.IsZero():
		s.cartID = details.CartID
	case len(items) > 0:
		s.cartID = items[0].CartID
	}
	if details.IsSubmitted {
		s.submitted = true
	}
	s.errMsg = ""
	return nil
}

func (s *CheckoutService) resetLocked() {
	s.cartID = ""
	s.items = nil
	s.checkout = nil
	s.submitted = false
}

func (s *CheckoutService) userID(ctx context.Context) (int64, error) {
	if id, ok := s.session.UserID(); ok {
		return id, nil
	}
	if !s.session.Authenticated() {
		return 0, domain.ErrNotAuthenticated
	}

	user, err := s.repo.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.session.SetUserID(user.ID); err != nil {
		s.logger.Warnw("failed to persist user id", "user_id", user.ID, "error", err)
	}
	return user.ID, nil
}

type CheckoutItemView struct {
	ID                 domain.ID       `json:"id"`
	MenuID             domain.ID       `json:"menuId,omitempty"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	ImageURL           string          `json:"url,omitempty"`
	Price              decimal.Decimal `json:"price"`
	FormattedPrice     string          `json:"formattedPrice"`
	Quantity           int             `json:"quantity"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
	FormattedLineTotal string          `json:"formattedLineTotal"`
}

// CheckoutView is the read model shown to the user.
type CheckoutView struct {
	State          domain.CheckoutState `json:"state"`
	CheckoutID     domain.ID            `json:"checkoutId,omitempty"`
	CartID         domain.ID            `json:"cartId,omitempty"`
	Items          []CheckoutItemView   `json:"items"`
	ItemCount      int                  `json:"itemCount"`
	Total          decimal.Decimal      `json:"total"`
	FormattedTotal string               `json:"formattedTotal"`
	CreatedAt      *domain.Timestamp    `json:"createdAt,omitempty"`
	Loading        bool                 `json:"loading"`
	Error          string               `json:"error,omitempty"`
	Success        string               `json:"success,omitempty"`
	CanEdit        bool                 `json:"canEdit"`
	CanSubmit      bool                 `json:"canSubmit"`
	CanCancel      bool                 `json:"canCancel"`
}

func (s *CheckoutService) View() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.checkout.State()
	if s.submitted && state == domain.CheckoutDraft {
		state = domain.CheckoutSubmitted
	}

	items := s.items
	if s.checkout != nil && len(s.checkout.Items) > 0 {
		items = s.checkout.Items
	}

	total := decimal.Zero
	if s.checkout != nil {
		total = s.checkout.TotalPrice
	}

	loading := s.loadingLocked()
	view := CheckoutView{
		State:          state,
		CartID:         s.cartID,
		Items:          make([]CheckoutItemView, 0, len(items)),
		ItemCount:      domain.ItemCount(items),
		Total:          total,
		FormattedTotal: currency.FormatIDR(total),
		Loading:        loading,
		Error:          s.errMsg,
		Success:        s.success,
		CanEdit:        state == domain.CheckoutDraft && !loading,
		CanSubmit:      state == domain.CheckoutDraft && len(items) > 0 && !loading,
		CanCancel:      (state == domain.CheckoutDraft || state == domain.CheckoutSubmitted) && !loading,
	}
	if s.checkout != nil {
		view.CheckoutID = s.checkout.ID
		if !s.checkout.CreatedAt.IsZero() {
			createdAt := s.checkout.CreatedAt
			view.CreatedAt = &createdAt
		}
	}

	for _, it := range items {
		view.Items = append(view.Items, CheckoutItemView{
			ID:                 it.ID,
			MenuID:             it.MenuID,
			Name:               it.Menu.Name,
			Description:        it.Menu.Description,
			ImageURL:           it.Menu.ImageURL,
			Price:              it.Menu.Price,
			FormattedPrice:     currency.FormatIDR(it.Menu.Price),
			Quantity:           it.Quantity,
			LineTotal:          it.LineTotal(),
			FormattedLineTotal: currency.FormatIDR(it.LineTotal()),
		})
	}

	return view
}
