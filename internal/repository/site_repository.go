package repository

import (
	"context"

	"gorm.io/gorm"

	"consite/internal/model"
)

// SiteRepository defines site persistence operations.
type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	Save(ctx context.Context, site *model.Site) error
	FindByID(ctx context.Context, id uint) (*model.Site, error)
	FindAll(ctx context.Context, offset, limit int) ([]model.Site, int64, error)
	FindBySiteManager(ctx context.Context, userID uint) (*model.Site, error)
	FindByProcurementManager(ctx context.Context, userID uint) (*model.Site, error)
	Delete(ctx context.Context, id uint) error
}

type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates a new site repository.
func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

// Create creates a new site.
func (r *siteRepository) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

// Save persists an existing site.
func (r *siteRepository) Save(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Save(site).Error
}

// FindByID finds a site by ID.
func (r *siteRepository) FindByID(ctx context.Context, id uint) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// FindAll lists sites with offset pagination, returning the total row count.
func (r *siteRepository) FindAll(ctx context.Context, offset, limit int) ([]model.Site, int64, error) {
	var sites []model.Site
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Site{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("id").Find(&sites).Error; err != nil {
		return nil, 0, err
	}
	return sites, total, nil
}

// FindBySiteManager returns the site managed by the user, if any.
func (r *siteRepository) FindBySiteManager(ctx context.Context, userID uint) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).Where("site_manager_id = ?", userID).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// FindByProcurementManager returns the site whose procurement is managed by
// the user, if any.
func (r *siteRepository) FindByProcurementManager(ctx context.Context, userID uint) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).Where("procurement_manager_id = ?", userID).First(&site).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// Delete removes a site.
func (r *siteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Site{}, id).Error
}
