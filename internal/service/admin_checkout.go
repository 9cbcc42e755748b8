package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-client/internal/currency"
	"github.com/Beka01247/restaurant-client/internal/domain"
	"github.com/Beka01247/restaurant-client/internal/queue"
	"github.com/Beka01247/restaurant-client/internal/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	opFetchSubmitted = "fetch_submitted"
	opProcess        = "process"
)

// AdminCheckoutService is the processing queue of submitted checkouts.
type AdminCheckoutService struct {
	tracker

	repo   repo.CheckoutRepository
	events publisher
	logger *zap.SugaredLogger

	checkouts []domain.Checkout
}

func NewAdminCheckoutService(checkoutRepo repo.CheckoutRepository, broker queue.Broker, logger *zap.SugaredLogger) *AdminCheckoutService {
	return &AdminCheckoutService{
		repo:   checkoutRepo,
		events: publisher{broker: broker, logger: logger, now: time.Now},
		logger: logger,
	}
}

func (s *AdminCheckoutService) FetchSubmittedCheckouts(ctx context.Context) error {
	gen, err := s.begin(opFetchSubmitted)
	if err != nil {
		return err
	}
	defer s.end(opFetchSubmitted, gen)

	return s.fetch(ctx, gen)
}

// ProcessCheckout archives a submitted checkout server-side after
// confirmation, then re-lists the queue.
func (s *AdminCheckoutService) ProcessCheckout(ctx context.Context, id domain.ID, c Confirmer) error {
	if id.IsZero() {
		return s.reject(domain.ErrNoCheckout)
	}
	if !confirmed(ctx, c, promptProcessCheckout) {
		return s.reject(domain.ErrNotConfirmed)
	}

	gen, err := s.begin(opProcess)
	if err != nil {
		return err
	}
	defer s.end(opProcess, gen)

	s.mu.Lock()
	processed := &domain.Checkout{ID: id}
	for i := range s.checkouts {
		if s.checkouts[i].ID == id {
			found := s.checkouts[i]
			processed = &found
			break
		}
	}
	s.mu.Unlock()

	if err := s.repo.Process(ctx, id); err != nil {
		return s.fail(gen, fmt.Errorf("failed to process checkout %s: %w", id, err))
	}

	s.logger.Infow("processed checkout", "checkout_id", id)
	s.events.checkout(ctx, domain.EventCheckoutProcessed, processed, "")

	if err := s.fetch(ctx, gen); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.success = fmt.Sprintf("Checkout %s processed", id)
	return nil
}

// Reset forgets the listed queue and messages. It runs when the session is
// cleared.
func (s *AdminCheckoutService) Reset() {
	s.mu.Lock()
	s.invalidateLocked()
	s.checkouts = nil
	s.mu.Unlock()
}

func (s *AdminCheckoutService) fetch(ctx context.Context, gen uint64) error {
	all, err := s.repo.ListSubmitted(ctx)
	if err != nil {
		return s.fail(gen, fmt.Errorf("failed to fetch submitted checkouts: %w", err))
	}

	submitted := make([]domain.Checkout, 0, len(all))
	for _, c := range all {
		if c.IsSubmitted {
			submitted = append(submitted, c)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.currentLocked(gen); err != nil {
		return err
	}
	s.checkouts = submitted
	s.errMsg = ""
	return nil
}

type AdminCheckoutRow struct {
	ID             domain.ID         `json:"id"`
	CartID         domain.ID         `json:"cartId"`
	UserID         domain.ID         `json:"userId"`
	ItemCount      int               `json:"itemCount"`
	Items          []domain.CartItem `json:"items"`
	Total          decimal.Decimal   `json:"total"`
	FormattedTotal string            `json:"formattedTotal"`
	CreatedAt      domain.Timestamp  `json:"createdAt"`
}

type AdminCheckoutView struct {
	Checkouts []AdminCheckoutRow `json:"checkouts"`
	Loading   bool               `json:"loading"`
	Error     string             `json:"error,omitempty"`
	Success   string             `json:"success,omitempty"`
}

func (s *AdminCheckoutService) View() AdminCheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := AdminCheckoutView{
		Checkouts: make([]AdminCheckoutRow, 0, len(s.checkouts)),
		Loading:   s.loadingLocked(),
		Error:     s.errMsg,
		Success:   s.success,
	}
	for _, c := range s.checkouts {
		view.Checkouts = append(view.Checkouts, AdminCheckoutRow{
			ID:             c.ID,
			CartID:         c.CartID,
			UserID:         c.UserID,
			ItemCount:      domain.ItemCount(c.Items),
			Items:          c.Items,
			Total:          c.TotalPrice,
			FormattedTotal: currency.FormatIDR(c.TotalPrice),
			CreatedAt:      c.CreatedAt,
		})
	}
	return view
}
