package journey

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
)

const maxSaveAttempts = 3

// Service applies catalog edits to journey documents. Each edit loads the
// document, mutates it in memory and writes it back under a version check;
// the flat product mirror is updated afterwards on a best-effort basis.
type Service struct {
	docs     DocumentStore
	mirror   MirrorStore
	log      *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewService(docs DocumentStore, mirror MirrorStore, baseLog *logger.Logger) *Service {
	return &Service{
		docs:     docs,
		mirror:   mirror,
		log:      baseLog.With("service", "JourneyService"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

func (s *Service) GetJourney(ctx context.Context, slug string) (*models.Journey, error) {
	j, err := s.docs.FindBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return nil, apierr.NotFound("journey %q not found", slug)
	}
	if err != nil {
		return nil, apierr.Dependency("load journey", err)
	}
	return j, nil
}

func (s *Service) ListJourneys(ctx context.Context) ([]models.Journey, error) {
	journeys, err := s.docs.List(ctx)
	if err != nil {
		return nil, apierr.Dependency("list journeys", err)
	}
	return journeys, nil
}

func (s *Service) CreateJourney(ctx context.Context, slug, name, description string) (*models.Journey, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.TrimSpace(name) == "" {
		return nil, apierr.Validation("slug and name are required")
	}
	j := NewJourney(slug, name, description)
	err := s.docs.Create(ctx, j)
	if errors.Is(err, ErrExists) {
		return nil, apierr.Conflict("journey %q already exists", slug)
	}
	if err != nil {
		return nil, apierr.Dependency("create journey", err)
	}
	s.log.Info("Created journey", "slug", slug)
	return j, nil
}

func (s *Service) AddProduct(ctx context.Context, slug string, clientType models.ClientType, product models.JourneyProduct) (*models.Journey, error) {
	if err := checkClientType(clientType); err != nil {
		return nil, err
	}
	if err := s.checkProduct(product); err != nil {
		return nil, err
	}
	j, err := s.apply(ctx, slug, addProduct(clientType, product))
	if err != nil {
		return nil, err
	}
	s.log.Info("Added journey product", "slug", slug, "client_type", clientType, "product_id", product.ID)
	s.mirrorUpsert(ctx, product)
	return j, nil
}

func (s *Service) UpdateProduct(ctx context.Context, slug string, clientType models.ClientType, productID string, product models.JourneyProduct) (*models.Journey, error) {
	if err := checkClientType(clientType); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, apierr.Validation("product id is required")
	}
	product.ID = productID
	if err := s.checkProduct(product); err != nil {
		return nil, err
	}
	j, err := s.apply(ctx, slug, updateProduct(clientType, productID, product))
	if err != nil {
		return nil, err
	}
	s.log.Info("Updated journey product", "slug", slug, "client_type", clientType, "product_id", productID)
	s.mirrorUpsert(ctx, product)
	return j, nil
}

func (s *Service) DeleteProduct(ctx context.Context, slug string, clientType models.ClientType, productID string) (*models.Journey, error) {
	if err := checkClientType(clientType); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, apierr.Validation("product id is required")
	}
	j, err := s.apply(ctx, slug, deleteProduct(clientType, productID))
	if err != nil {
		return nil, err
	}
	s.log.Info("Deleted journey product", "slug", slug, "client_type", clientType, "product_id", productID)

	err = s.mirror.Delete(ctx, productID)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Debug("No mirrored product to delete", "product_id", productID)
	case err != nil:
		s.log.Warn("Mirror delete failed", "product_id", productID, "error", err)
	}
	return j, nil
}

// SetWaitlistFlag records the waitlist flag for productID. The product does
// not have to exist in either catalog.
func (s *Service) SetWaitlistFlag(ctx context.Context, slug, productID string, isWaitlist bool, actor string) (*models.Journey, error) {
	if productID == "" {
		return nil, apierr.Validation("product id is required")
	}
	setting := models.ProductSetting{IsWaitlist: isWaitlist, UpdatedAt: s.now().UTC(), UpdatedBy: actor}
	j, err := s.apply(ctx, slug, setWaitlist(productID, setting))
	if err != nil {
		return nil, err
	}
	if !j.Content.Data().Contains(productID) {
		s.log.Warn("Waitlist flag set for product not in catalog", "slug", slug, "product_id", productID)
	}
	s.log.Info("Set waitlist flag", "slug", slug, "product_id", productID, "is_waitlist", isWaitlist, "actor", actor)
	return j, nil
}

// apply runs the load, mutate, save cycle, retrying when another writer saved
// the same journey in between.
func (s *Service) apply(ctx context.Context, slug string, mutate mutation) (*models.Journey, error) {
	for attempt := 1; ; attempt++ {
		j, err := s.GetJourney(ctx, slug)
		if err != nil {
			return nil, err
		}
		if err := mutate(j); err != nil {
			return nil, err
		}
		err = s.docs.Save(ctx, j)
		if err == nil {
			return j, nil
		}
		if !errors.Is(err, ErrStale) {
			return nil, apierr.Dependency("save journey", err)
		}
		if attempt >= maxSaveAttempts {
			return nil, apierr.Conflict("journey %q is being edited concurrently, retry", slug)
		}
		s.log.Debug("Stale journey write, retrying", "slug", slug, "attempt", attempt)
	}
}

func (s *Service) mirrorUpsert(ctx context.Context, product models.JourneyProduct) {
	row := &models.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       ParsePrice(product.Price),
		Images:      append([]string{}, product.Images...),
	}
	cat, err := s.mirror.FirstCategory(ctx)
	switch {
	case err == nil:
		row.CategoryID = &cat.ID
	case !errors.Is(err, ErrNotFound):
		s.log.Warn("Category lookup failed", "product_id", product.ID, "error", err)
	}
	if err := s.mirror.Upsert(ctx, row); err != nil {
		s.log.Warn("Mirror upsert failed", "product_id", product.ID, "error", err)
	}
}

func (s *Service) checkProduct(p models.JourneyProduct) error {
	if err := s.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apierr.Validation("product field %s failed %q", fe.Namespace(), fe.Tag())
		}
		return apierr.Validation("invalid product: %v", err)
	}
	return nil
}

func checkClientType(clientType models.ClientType) error {
	if clientType == "" {
		return apierr.Validation("clientType is required")
	}
	if !clientType.Valid() {
		return apierr.Validation("clientType must be %q or %q", models.SoulLuxury, models.EnergyCurious)
	}
	return nil
}

// ParseClientType validates a raw clientType value from a request.
func ParseClientType(raw string) (models.ClientType, error) {
	ct := models.ClientType(strings.TrimSpace(raw))
	if err := checkClientType(ct); err != nil {
		return "", err
	}
	return ct, nil
}
