package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/repository"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService moves stock between the catalog and the cart. Every
// mutation is validated before anything changes and is persisted once
// applied, so available + reserved stays constant per product until
// checkout consumes the cart.
type CartService struct {
	repo    repository.Repository
	catalog *store.Catalog
	cart    *store.Cart
	log     *zap.Logger
	now     func() time.Time
}

func NewCartService(repo repository.Repository, log *zap.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: store.NewCatalog(),
		cart:    store.NewCart(),
		log:     log,
		now:     time.Now,
	}
}

// Load replaces the in-memory state with what the repository holds.
// Cart lines naming unknown products are dropped.
func (s *CartService) Load(ctx context.Context) error {
	productRecords, err := s.repo.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	catalog, err := store.LoadCatalog(productRecords)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	cartRecords, err := s.repo.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	cart, dropped := store.LoadCart(cartRecords, catalog)
	for _, rec := range dropped {
		s.log.Warn("dropping cart record",
			zap.String("product_id", rec.ProductID),
			zap.Int("quantity", rec.Quantity))
	}

	s.catalog = catalog
	s.cart = cart
	s.log.Info("state loaded", zap.Int("products", catalog.Len()), zap.Int("cart_items", cart.Len()))
	return nil
}

// AddProduct puts a new product into the catalog
func (s *CartService) AddProduct(ctx context.Context, p *domain.Product) error {
	if err := s.catalog.Add(p); err != nil {
		return err
	}

	s.log.Info("product added",
		zap.String("product_id", p.ID),
		zap.String("type", string(p.Kind())),
		zap.Int("quantity_available", p.Available()))
	return s.persist(ctx)
}

func (s *CartService) Product(productID string) (*domain.Product, bool) {
	return s.catalog.Get(productID)
}

func (s *CartService) Products() []*domain.Product {
	return s.catalog.List()
}

// Search matches keyword against product names, ignoring case
func (s *CartService) Search(keyword string) []*domain.Product {
	return s.catalog.FindByName(keyword)
}

func (s *CartService) Items() []*domain.CartItem {
	return s.cart.Items()
}

// Total is the sum of all cart subtotals
func (s *CartService) Total() decimal.Decimal {
	return s.cart.Total()
}

// AddItem reserves quantity units of a product, merging with an existing
// cart entry
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	p, ok := s.catalog.Get(productID)
	if !ok {
		return domain.ErrProductNotFound
	}

	if err := p.DecreaseQuantity(quantity); err != nil {
		return err
	}

	if item, ok := s.cart.Get(productID); ok {
		if err := item.SetQuantity(item.Quantity() + quantity); err != nil {
			return err
		}
	} else {
		newItem, err := domain.NewCartItem(p, quantity)
		if err != nil {
			return err
		}
		s.cart.Put(newItem)
	}

	s.log.Info("item added",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("quantity_available", p.Available()))
	return s.persist(ctx)
}

// RemoveItem drops the cart entry and returns its whole quantity to stock
func (s *CartService) RemoveItem(ctx context.Context, productID string) error {
	item, ok := s.cart.Get(productID)
	if !ok {
		return domain.ErrItemNotFound
	}

	if q := item.Quantity(); q > 0 {
		if err := item.Product.IncreaseQuantity(q); err != nil {
			return err
		}
	}
	s.cart.Delete(productID)

	s.log.Info("item removed",
		zap.String("product_id", productID),
		zap.Int("quantity", item.Quantity()),
		zap.Int("quantity_available", item.Product.Available()))
	return s.persist(ctx)
}

// UpdateQuantity sets the reserved quantity of a cart entry, taking the
// difference from or returning it to stock. Zero removes the entry.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	item, ok := s.cart.Get(productID)
	if !ok {
		return domain.ErrItemNotFound
	}
	if quantity < 0 {
		return domain.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, productID)
	}

	diff := quantity - item.Quantity()
	switch {
	case diff > 0:
		if err := item.Product.DecreaseQuantity(diff); err != nil {
			return err
		}
	case diff < 0:
		if err := item.Product.IncreaseQuantity(-diff); err != nil {
			return err
		}
	}
	if err := item.SetQuantity(quantity); err != nil {
		return err
	}

	s.log.Info("quantity updated",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("quantity_available", item.Product.Available()))
	return s.persist(ctx)
}

// Checkout consumes the cart: reserved stock is not returned. An empty
// cart yields a receipt with no lines and a zero total.
func (s *CartService) Checkout(ctx context.Context) (*domain.Receipt, error) {
	items := s.cart.Items()
	receipt := &domain.Receipt{
		ID:        uuid.NewString(),
		Lines:     make([]domain.ReceiptLine, 0, len(items)),
		Total:     s.cart.Total(),
		CreatedAt: s.now(),
	}
	for _, item := range items {
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	if len(items) == 0 {
		s.log.Info("checkout of empty cart", zap.String("receipt_id", receipt.ID))
		return receipt, nil
	}

	s.cart.Clear()

	s.log.Info("checkout completed",
		zap.String("receipt_id", receipt.ID),
		zap.Int("lines", len(receipt.Lines)),
		zap.String("total", receipt.Total.StringFixed(2)))

	if err := s.persist(ctx); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// persist saves the catalog and then the cart. Cancellation of ctx is
// ignored so an interrupt cannot leave the two out of step on disk.
func (s *CartService) persist(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.SaveCatalog(ctx, s.catalog.Records()); err != nil {
		s.log.Error("save catalog failed", zap.Error(err))
		return fmt.Errorf("failed to persist catalog: %w", err)
	}
	if err := s.repo.SaveCart(ctx, s.cart.Records()); err != nil {
		s.log.Error("save cart failed", zap.Error(err))
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
