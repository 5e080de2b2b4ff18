package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"consite/internal/errors"
	"consite/internal/model"
)

func TestItemService_Add(t *testing.T) {
	t.Run("lists a new item", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("FindByName", mock.Anything, "Portland Cement 50kg").Return(nil, gorm.ErrRecordNotFound)
		items.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
			return i.Name == "Portland Cement 50kg" && i.QuantityAvailable == 500
		})).Return(nil)

		service := NewItemService(items, nil)
		item, err := service.Add(context.Background(), ItemInput{
			Name:              "Portland Cement 50kg",
			Manufacturer:      "Holcim",
			QuantityAvailable: 500,
			Price:             decimal.NewFromInt(12),
			VolumeType:        "bag",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Portland Cement 50kg", item.Name)
		items.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("FindByName", mock.Anything, "Portland Cement 50kg").
			Return(&model.Item{ID: 1, Name: "Portland Cement 50kg"}, nil)

		service := NewItemService(items, nil)
		item, err := service.Add(context.Background(), ItemInput{Name: "Portland Cement 50kg"})

		assert.Nil(t, item)
		assert.Equal(t, errors.KindConflict, errors.KindOf(err))
		assert.EqualError(t, err, "the item already exists")
		items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestItemService_GetAll(t *testing.T) {
	t.Run("returns the catalog", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("FindAll", mock.Anything).Return([]model.Item{{ID: 1}, {ID: 2}}, nil)

		service := NewItemService(items, nil)
		catalog, err := service.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, catalog, 2)
	})

	t.Run("empty catalog", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("FindAll", mock.Anything).Return([]model.Item{}, nil)

		service := NewItemService(items, nil)
		_, err := service.GetAll(context.Background())

		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestItemService_Update(t *testing.T) {
	t.Run("updates only the provided fields", func(t *testing.T) {
		items := new(MockItemRepository)
		existing := &model.Item{
			ID:                1,
			Name:              "Rebar 12mm 6m",
			Manufacturer:      "ArcelorMittal",
			QuantityAvailable: 1200,
			Price:             decimal.NewFromFloat(8.5),
		}
		items.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		items.On("Save", mock.Anything, mock.MatchedBy(func(i *model.Item) bool {
			return i.QuantityAvailable == 900 && i.Name == "Rebar 12mm 6m" && i.Manufacturer == "ArcelorMittal"
		})).Return(nil)

		service := NewItemService(items, nil)
		err := service.Update(context.Background(), ItemInput{ItemID: uintPtr(1), QuantityAvailable: 900})

		assert.NoError(t, err)
		items.AssertExpectations(t)
	})

	t.Run("item id is required", func(t *testing.T) {
		service := NewItemService(new(MockItemRepository), nil)
		err := service.Update(context.Background(), ItemInput{Name: "whatever"})

		assert.Equal(t, errors.KindBadRequest, errors.KindOf(err))
	})

	t.Run("unknown item", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewItemService(items, nil)
		err := service.Update(context.Background(), ItemInput{ItemID: uintPtr(9)})

		assert.Equal(t, errors.KindNotFound, errors.KindOf(err))
	})
}

func TestItemService_Delete(t *testing.T) {
	items := new(MockItemRepository)
	items.On("FindByID", mock.Anything, uint(1)).Return(&model.Item{ID: 1}, nil)
	items.On("Delete", mock.Anything, uint(1)).Return(nil)

	service := NewItemService(items, nil)
	err := service.Delete(context.Background(), 1)

	assert.NoError(t, err)
	items.AssertExpectations(t)
}
