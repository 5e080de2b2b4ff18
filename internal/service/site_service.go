package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

// SiteInput carries the fields for creating or updating a site.
type SiteInput struct {
	SiteID               *uint
	Name                 string
	Location             string
	ContactNumber        string
	AllocatedBudget      decimal.Decimal
	StartDate            *time.Time
	SiteManagerID        *uint
	ProcurementManagerID *uint
}

// SiteService enforces the site assignment rules: one site manager and one
// procurement manager per site, each managing at most one site system-wide,
// and user-to-site allocation.
type SiteService interface {
	Add(ctx context.Context, input SiteInput) (*model.Site, error)
	GetAll(ctx context.Context, page, size int) ([]model.Site, int64, error)
	Get(ctx context.Context, siteID uint) (*model.Site, error)
	Update(ctx context.Context, input SiteInput) error
	Delete(ctx context.Context, siteID uint) error
	Allocate(ctx context.Context, siteID uint, userEmail string) error
	Deallocate(ctx context.Context, siteID uint, userEmail string) error
	UsersOf(ctx context.Context, siteID uint, page, size int) ([]model.User, error)
}

type siteService struct {
	sites repository.SiteRepository
	users repository.UserRepository
	tx    repository.TxManager
}

// NewSiteService creates a new site service.
func NewSiteService(sites repository.SiteRepository, users repository.UserRepository, tx repository.TxManager) SiteService {
	return &siteService{sites: sites, users: users, tx: tx}
}

// eligibleSiteManager validates a site manager candidate: present, existing,
// carrying the SITE_MANAGER role and not already managing another site.
func eligibleSiteManager(ctx context.Context, reg repository.Registry, candidateID *uint) (*model.User, error) {
	if candidateID == nil {
		return nil, errors.BadRequest("site manager information is required to proceed")
	}

	candidate, err := reg.Users.FindByID(ctx, *candidateID)
	if err != nil {
		return nil, errors.NotFound("couldn't find the site manager account")
	}

	if candidate.Role != model.RoleSiteManager {
		return nil, errors.BadRequest("not a valid site manager role")
	}

	if _, err := reg.Sites.FindBySiteManager(ctx, candidate.ID); err == nil {
		return nil, errors.Conflict("the site manager is already assigned to a site")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.Internal("failed to check site manager assignment")
	}

	return candidate, nil
}

// eligibleProcurementManager is the symmetric rule for procurement managers.
func eligibleProcurementManager(ctx context.Context, reg repository.Registry, candidateID uint) (*model.User, error) {
	candidate, err := reg.Users.FindByID(ctx, candidateID)
	if err != nil {
		return nil, errors.NotFound("couldn't find the procurement manager account")
	}

	if candidate.Role != model.RoleProcurementManager {
		return nil, errors.BadRequest("not a valid procurement manager role")
	}

	if _, err := reg.Sites.FindByProcurementManager(ctx, candidate.ID); err == nil {
		return nil, errors.Conflict("the procurement manager is already assigned to a site")
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.Internal("failed to check procurement manager assignment")
	}

	return candidate, nil
}

// Add creates a site. A valid, unassigned site manager is required; a
// procurement manager is optional. The site row and both manager
// back-references commit in one transaction.
func (s *siteService) Add(ctx context.Context, input SiteInput) (*model.Site, error) {
	var site *model.Site
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		manager, err := eligibleSiteManager(ctx, reg, input.SiteManagerID)
		if err != nil {
			return err
		}

		site = &model.Site{
			Name:            input.Name,
			Location:        input.Location,
			ContactNumber:   input.ContactNumber,
			AllocatedBudget: input.AllocatedBudget,
			StartDate:       input.StartDate,
			SiteManagerID:   &manager.ID,
		}

		var procurementManager *model.User
		if input.ProcurementManagerID != nil {
			procurementManager, err = eligibleProcurementManager(ctx, reg, *input.ProcurementManagerID)
			if err != nil {
				return err
			}
			site.ProcurementManagerID = &procurementManager.ID
		}

		if err := reg.Sites.Create(ctx, site); err != nil {
			return errors.Internal("failed to save the site")
		}

		manager.SiteID = &site.ID
		if err := reg.Users.Save(ctx, manager); err != nil {
			return errors.Internal("failed to update the site manager reference")
		}

		if procurementManager != nil {
			procurementManager.SiteID = &site.ID
			if err := reg.Users.Save(ctx, procurementManager); err != nil {
				return errors.Internal("failed to update the procurement manager reference")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return site, nil
}

// GetAll lists sites with offset pagination.
func (s *siteService) GetAll(ctx context.Context, page, size int) ([]model.Site, int64, error) {
	sites, total, err := s.sites.FindAll(ctx, page*size, size)
	if err != nil {
		return nil, 0, errors.Internal("failed to list sites")
	}
	if len(sites) == 0 {
		return nil, 0, errors.NotFound("currently, there are no sites in the system")
	}
	return sites, total, nil
}

// Get returns a site by id.
func (s *siteService) Get(ctx context.Context, siteID uint) (*model.Site, error) {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return nil, errors.NotFound("couldn't find any site with the provided ID")
	}
	return site, nil
}

// Update modifies site fields and reassigns managers. The previous managers
// are detached before the new ones attach, all within one transaction, so
// the one-manager-per-site invariant never observes an intermediate state.
func (s *siteService) Update(ctx context.Context, input SiteInput) error {
	if input.SiteID == nil {
		return errors.BadRequest("site information is required to proceed")
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		site, err := reg.Sites.FindByID(ctx, *input.SiteID)
		if err != nil {
			return errors.NotFound("couldn't find any site with the provided ID")
		}

		if err := detachManagers(ctx, reg, site); err != nil {
			return err
		}

		manager, err := eligibleSiteManager(ctx, reg, input.SiteManagerID)
		if err != nil {
			return err
		}

		if input.Name != "" {
			site.Name = input.Name
		}
		if input.Location != "" {
			site.Location = input.Location
		}
		if input.ContactNumber != "" {
			site.ContactNumber = input.ContactNumber
		}
		if input.StartDate != nil {
			site.StartDate = input.StartDate
		}
		if !input.AllocatedBudget.IsZero() {
			site.AllocatedBudget = input.AllocatedBudget
		}

		site.SiteManagerID = &manager.ID

		var procurementManager *model.User
		if input.ProcurementManagerID != nil {
			procurementManager, err = eligibleProcurementManager(ctx, reg, *input.ProcurementManagerID)
			if err != nil {
				return err
			}
			site.ProcurementManagerID = &procurementManager.ID
		}

		if err := reg.Sites.Save(ctx, site); err != nil {
			return errors.Internal("failed to save the site")
		}

		manager.SiteID = &site.ID
		if err := reg.Users.Save(ctx, manager); err != nil {
			return errors.Internal("failed to update the site manager reference")
		}

		if procurementManager != nil {
			procurementManager.SiteID = &site.ID
			if err := reg.Users.Save(ctx, procurementManager); err != nil {
				return errors.Internal("failed to update the procurement manager reference")
			}
		}
		return nil
	})
}

// detachManagers clears the site's manager references and the managers' own
// site back-references.
func detachManagers(ctx context.Context, reg repository.Registry, site *model.Site) error {
	for _, managerID := range []*uint{site.SiteManagerID, site.ProcurementManagerID} {
		if managerID == nil {
			continue
		}
		manager, err := reg.Users.FindByID(ctx, *managerID)
		if err != nil {
			return errors.Internal("internal server error occurred")
		}
		manager.SiteID = nil
		if err := reg.Users.Save(ctx, manager); err != nil {
			return errors.Internal("failed to detach the manager reference")
		}
	}

	site.SiteManagerID = nil
	site.ProcurementManagerID = nil
	if err := reg.Sites.Save(ctx, site); err != nil {
		return errors.Internal("failed to save the site")
	}
	return nil
}

// Delete removes a site after clearing its manager references and detaching
// every allocated user.
func (s *siteService) Delete(ctx context.Context, siteID uint) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		site, err := reg.Sites.FindByID(ctx, siteID)
		if err != nil {
			return errors.NotFound("couldn't find any site with the provided ID")
		}

		if err := detachManagers(ctx, reg, site); err != nil {
			return err
		}

		if err := reg.Users.DetachAllFromSite(ctx, siteID); err != nil {
			return errors.Internal("failed to detach site users")
		}

		if err := reg.Sites.Delete(ctx, siteID); err != nil {
			return errors.Internal("failed to delete the site")
		}
		return nil
	})
}

// Allocate assigns a user to a site. A user belongs to at most one site.
func (s *siteService) Allocate(ctx context.Context, siteID uint, userEmail string) error {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return errors.NotFound("provided site id is invalid")
	}

	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return errors.NotFound("provided email address is invalid")
	}

	if user.SiteID != nil {
		return errors.BadRequest("user has already been allocated to a site")
	}

	user.SiteID = &site.ID
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Internal("failed to allocate the user")
	}
	return nil
}

// Deallocate removes a user from a site. Managers cannot be deallocated by
// this path; manager reassignment goes through Update.
func (s *siteService) Deallocate(ctx context.Context, siteID uint, userEmail string) error {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return errors.NotFound("provided site id is invalid")
	}

	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return errors.NotFound("provided email address is invalid")
	}

	if user.SiteID == nil {
		return errors.BadRequest("the user has already been deallocated")
	}

	if site.SiteManagerID != nil && *site.SiteManagerID == user.ID {
		return errors.BadRequest("site manager can't be deallocated")
	}
	if site.ProcurementManagerID != nil && *site.ProcurementManagerID == user.ID {
		return errors.BadRequest("procurement manager can't be deallocated")
	}

	user.SiteID = nil
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Internal("failed to deallocate the user")
	}
	return nil
}

// UsersOf lists users allocated to a site.
func (s *siteService) UsersOf(ctx context.Context, siteID uint, page, size int) ([]model.User, error) {
	if _, err := s.sites.FindByID(ctx, siteID); err != nil {
		return nil, errors.NotFound("couldn't find any site with the provided ID")
	}

	users, err := s.users.FindBySite(ctx, siteID, page*size, size)
	if err != nil {
		return nil, errors.Internal("failed to list site users")
	}
	if len(users) == 0 {
		return nil, errors.NotFound("couldn't find any users in this site")
	}
	return users, nil
}
