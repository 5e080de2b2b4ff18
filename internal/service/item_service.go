package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"consite/internal/cache"
	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

const (
	itemListCacheKey = "items:all"
	itemListCacheTTL = 5 * time.Minute
)

// ItemInput carries the fields for creating or updating a catalog item.
type ItemInput struct {
	ItemID            *uint
	Name              string
	Description       string
	Manufacturer      string
	QuantityAvailable int
	Price             decimal.Decimal
	VolumeType        string
	Weight            *float64
	Color             string
}

// ItemService handles the item catalog.
type ItemService interface {
	Add(ctx context.Context, input ItemInput) (*model.Item, error)
	GetAll(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, itemID uint) (*model.Item, error)
	Update(ctx context.Context, input ItemInput) error
	Delete(ctx context.Context, itemID uint) error
}

type itemService struct {
	items repository.ItemRepository
	cache *cache.Client
}

// NewItemService creates a new item service.
func NewItemService(items repository.ItemRepository, cache *cache.Client) ItemService {
	return &itemService{items: items, cache: cache}
}

// Add lists a new catalog item. Item names are unique.
func (s *itemService) Add(ctx context.Context, input ItemInput) (*model.Item, error) {
	existing, err := s.items.FindByName(ctx, input.Name)
	if err == nil && existing != nil {
		return nil, errors.Conflict("the item already exists")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, errors.Internal("failed to check item existence")
	}

	item := &model.Item{
		Name:              input.Name,
		Description:       input.Description,
		Manufacturer:      input.Manufacturer,
		QuantityAvailable: input.QuantityAvailable,
		Price:             input.Price,
		VolumeType:        input.VolumeType,
		Weight:            input.Weight,
		Color:             input.Color,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, errors.Internal("failed to save the item")
	}

	_ = s.cache.Delete(ctx, itemListCacheKey)
	return item, nil
}

// GetAll lists the catalog, served from cache when warm.
func (s *itemService) GetAll(ctx context.Context) ([]model.Item, error) {
	if data, _ := s.cache.Get(ctx, itemListCacheKey); data != nil {
		var cached []model.Item
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	items, err := s.items.FindAll(ctx)
	if err != nil {
		return nil, errors.Internal("failed to list items")
	}
	if len(items) == 0 {
		return nil, errors.NotFound("couldn't find any items in the system")
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, itemListCacheKey, payload, itemListCacheTTL)
	}
	return items, nil
}

// Get returns a catalog item by id.
func (s *itemService) Get(ctx context.Context, itemID uint) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, errors.NotFound("couldn't find any item with the provided ID")
	}
	return item, nil
}

// Update modifies an existing catalog item.
func (s *itemService) Update(ctx context.Context, input ItemInput) error {
	if input.ItemID == nil {
		return errors.BadRequest("item information is required to proceed")
	}

	item, err := s.items.FindByID(ctx, *input.ItemID)
	if err != nil {
		return errors.NotFound("couldn't find any item with the provided ID")
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Manufacturer != "" {
		item.Manufacturer = input.Manufacturer
	}
	if input.QuantityAvailable != 0 {
		item.QuantityAvailable = input.QuantityAvailable
	}
	if !input.Price.IsZero() {
		item.Price = input.Price
	}
	if input.VolumeType != "" {
		item.VolumeType = input.VolumeType
	}
	if input.Weight != nil {
		item.Weight = input.Weight
	}
	if input.Color != "" {
		item.Color = input.Color
	}

	if err := s.items.Save(ctx, item); err != nil {
		return errors.Internal("failed to update the item")
	}

	_ = s.cache.Delete(ctx, itemListCacheKey)
	return nil
}

// Delete removes a catalog item.
func (s *itemService) Delete(ctx context.Context, itemID uint) error {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return errors.NotFound("couldn't find any item with the provided ID")
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return errors.Internal("failed to delete the item")
	}

	_ = s.cache.Delete(ctx, itemListCacheKey)
	return nil
}
