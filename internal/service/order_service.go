package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"consite/internal/authz"
	"consite/internal/errors"
	"consite/internal/model"
	"consite/internal/repository"
)

// OrderLine is one requested item of a new order.
type OrderLine struct {
	ItemID   uint
	Quantity int
}

// OrderInput carries the fields for creating an order.
type OrderInput struct {
	RequiredDate time.Time
	Items        []OrderLine
}

// OrderItemView is an order line as exposed to callers.
type OrderItemView struct {
	OrderItemID uint         `json:"order_item_id"`
	Quantity    int          `json:"quantity"`
	Status      model.Status `json:"status"`
	ItemID      uint         `json:"item_id"`
	OrderID     uint         `json:"order_id"`
}

// OrderDetailsView is an order as exposed to callers. Items are present only
// when the caller's role may see them for the order's current status.
type OrderDetailsView struct {
	OrderID      uint            `json:"order_id"`
	Status       model.Status    `json:"status"`
	RequiredDate time.Time       `json:"required_date"`
	SiteID       uint            `json:"site_id"`
	SupplierID   *uint           `json:"supplier_id,omitempty"`
	Items        []OrderItemView `json:"items,omitempty"`
}

// OrderService is the order/order-item workflow state machine. Every
// mutation is gated on the caller's role through the authorization guard;
// transitions follow the fixed table below.
//
//	Pending  --approve (procurement manager)--> Approved, all items Approved
//	Pending/Approved --cancel (procurement manager)--> Cancelled, all items Cancelled
//	Approved --deliver (assigned supplier)--> Delivered, all items Delivered
//	Pending/Approved/Delivered --complete (site manager)--> Completed, all items Completed
//
// Order-level transitions force every item to the same status as a bulk
// convenience; the single-item transitions below mutate one line without
// touching the order.
type OrderService interface {
	GetAllOrderDetails(ctx context.Context, caller *model.User) ([]OrderDetailsView, error)
	AddOrder(ctx context.Context, caller *model.User, input OrderInput) (*model.OrderDetails, error)
	AddOrderItem(ctx context.Context, caller *model.User, orderID, itemID uint, quantity int) error
	RemoveOrderItem(ctx context.Context, caller *model.User, orderItemID uint) error
	AssignSupplier(ctx context.Context, caller *model.User, orderID, supplierID uint) error
	GetSuppliers(ctx context.Context, caller *model.User) ([]model.User, error)
	GetSiteInfo(ctx context.Context, siteID uint) (*model.Site, error)

	SetAsApproved(ctx context.Context, caller *model.User, orderID uint) error
	SetAsCancelled(ctx context.Context, caller *model.User, orderID uint) error
	SetAsDelivered(ctx context.Context, caller *model.User, orderID uint) error
	SetAsComplete(ctx context.Context, caller *model.User, orderID uint) error

	SetAsCompleteItem(ctx context.Context, caller *model.User, orderItemID uint) error
	SetAsReturnItem(ctx context.Context, caller *model.User, orderItemID uint) error
	SetAsDeliveredItem(ctx context.Context, caller *model.User, orderItemID uint) error
	SetAsCancelledItem(ctx context.Context, caller *model.User, orderItemID uint) error
}

type orderService struct {
	orders     repository.OrderRepository
	orderItems repository.OrderItemRepository
	items      repository.ItemRepository
	users      repository.UserRepository
	sites      repository.SiteRepository
	tx         repository.TxManager
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	orderItems repository.OrderItemRepository,
	items repository.ItemRepository,
	users repository.UserRepository,
	sites repository.SiteRepository,
	tx repository.TxManager,
) OrderService {
	return &orderService{
		orders:     orders,
		orderItems: orderItems,
		items:      items,
		users:      users,
		sites:      sites,
		tx:         tx,
	}
}

// GetAllOrderDetails returns the orders of the caller's site. Procurement
// managers see items only for Pending, Approved and Cancelled orders;
// suppliers only for Approved and Returned ones; all other roles always see
// items.
func (s *orderService) GetAllOrderDetails(ctx context.Context, caller *model.User) ([]OrderDetailsView, error) {
	if caller.SiteID == nil {
		return nil, errors.NotFound("you are not currently assigned to any site")
	}

	orders, err := s.orders.FindBySite(ctx, *caller.SiteID)
	if err != nil {
		return nil, errors.Internal("failed to list orders")
	}
	if len(orders) == 0 {
		return nil, errors.NotFound("haven't found any orders for this site yet")
	}

	views := make([]OrderDetailsView, 0, len(orders))
	for i := range orders {
		views = append(views, orderView(&orders[i], caller.Role))
	}
	return views, nil
}

func orderView(order *model.OrderDetails, callerRole model.Role) OrderDetailsView {
	view := OrderDetailsView{
		OrderID:      order.ID,
		Status:       order.Status,
		RequiredDate: order.RequiredDate,
		SiteID:       order.SiteID,
		SupplierID:   order.SupplierID,
	}
	if itemsVisible(callerRole, order.Status) {
		view.Items = itemViews(order)
	}
	return view
}

func itemsVisible(role model.Role, status model.Status) bool {
	switch role {
	case model.RoleProcurementManager:
		return status == model.StatusPending || status == model.StatusApproved || status == model.StatusCancelled
	case model.RoleSupplier:
		return status == model.StatusApproved || status == model.StatusReturned
	default:
		return true
	}
}

func itemViews(order *model.OrderDetails) []OrderItemView {
	views := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		views = append(views, OrderItemView{
			OrderItemID: item.ID,
			Quantity:    item.Quantity,
			Status:      item.Status,
			ItemID:      item.ItemID,
			OrderID:     order.ID,
		})
	}
	return views
}

// AddOrder creates a Pending order with no supplier on the caller's own
// site. Lines referencing an unknown item are skipped without failing the
// order.
func (s *orderService) AddOrder(ctx context.Context, caller *model.User, input OrderInput) (*model.OrderDetails, error) {
	if err := authz.Authorize(caller.Role, model.PermissionSiteManagerCreate); err != nil {
		return nil, err
	}
	if caller.SiteID == nil {
		return nil, errors.NotFound("you are not currently assigned to any site")
	}

	order := &model.OrderDetails{
		Status:       model.StatusPending,
		RequiredDate: input.RequiredDate,
		SiteID:       *caller.SiteID,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		if err := reg.Orders.Create(ctx, order); err != nil {
			return errors.Internal("failed to save the order")
		}

		for _, line := range input.Items {
			item, err := reg.Items.FindByID(ctx, line.ItemID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					continue
				}
				return errors.Internal("failed to resolve the order item")
			}

			orderItem := &model.OrderItem{
				Quantity: line.Quantity,
				Status:   model.StatusPending,
				ItemID:   item.ID,
				OrderID:  order.ID,
			}
			if err := reg.OrderItems.Create(ctx, orderItem); err != nil {
				return errors.Internal("failed to save the order item")
			}
			order.Items = append(order.Items, *orderItem)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AddOrderItem appends a Pending line to an existing order.
func (s *orderService) AddOrderItem(ctx context.Context, caller *model.User, orderID, itemID uint, quantity int) error {
	if err := authz.Authorize(caller.Role, model.PermissionSiteManagerUpdate); err != nil {
		return err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return errors.NotFound("order not found with the provided ID")
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return errors.NotFound("item not found with the provided ID")
	}

	orderItem := &model.OrderItem{
		Quantity: quantity,
		Status:   model.StatusPending,
		ItemID:   item.ID,
		OrderID:  order.ID,
	}
	if err := s.orderItems.Create(ctx, orderItem); err != nil {
		return errors.Internal("failed to save the order item")
	}
	return nil
}

// RemoveOrderItem deletes an order line. An order never reaches zero items
// through removal.
func (s *orderService) RemoveOrderItem(ctx context.Context, caller *model.User, orderItemID uint) error {
	if err := authz.Authorize(caller.Role, model.PermissionSiteManagerDelete); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		orderItem, err := reg.OrderItems.FindByID(ctx, orderItemID)
		if err != nil {
			return errors.NotFound("order item not found with the provided ID")
		}

		count, err := reg.OrderItems.CountByOrder(ctx, orderItem.OrderID)
		if err != nil {
			return errors.Internal("failed to count the order items")
		}
		if count <= 1 {
			return errors.BadRequest("an order must contain at least one item")
		}

		if err := reg.OrderItems.Delete(ctx, orderItemID); err != nil {
			return errors.Internal("failed to remove the order item")
		}
		return nil
	})
}

// AssignSupplier attaches a SUPPLIER-role user to an order on the caller's
// own site. Cross-site assignment is forbidden.
func (s *orderService) AssignSupplier(ctx context.Context, caller *model.User, orderID, supplierID uint) error {
	if err := authz.Authorize(caller.Role, model.PermissionProcurementManagerUpdate); err != nil {
		return err
	}
	if caller.SiteID == nil {
		return errors.NotFound("you are not currently assigned to any site")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return errors.NotFound("the order you are looking for does not exist")
	}

	supplier, err := s.users.FindByID(ctx, supplierID)
	if err != nil {
		return errors.NotFound("the supplier you are looking for does not exist")
	}

	if order.SiteID != *caller.SiteID {
		return errors.BadRequest("invalid supplier assignment for this order")
	}
	if supplier.Role != model.RoleSupplier {
		return errors.BadRequest("invalid supplier role")
	}

	order.SupplierID = &supplier.ID
	if err := s.orders.Save(ctx, order); err != nil {
		return errors.Internal("failed to assign the supplier")
	}
	return nil
}

// GetSuppliers lists active suppliers allocated to the caller's site.
func (s *orderService) GetSuppliers(ctx context.Context, caller *model.User) ([]model.User, error) {
	if caller.SiteID == nil {
		return nil, errors.NotFound("you are not currently assigned to any site")
	}

	suppliers, err := s.users.FindActiveBySiteAndRole(ctx, *caller.SiteID, model.RoleSupplier)
	if err != nil {
		return nil, errors.Internal("failed to list suppliers")
	}
	if len(suppliers) == 0 {
		return nil, errors.NotFound("no suppliers have been assigned to this site yet")
	}
	return suppliers, nil
}

// GetSiteInfo returns a site stripped of its budget and manager references,
// the view suppliers are allowed to see.
func (s *orderService) GetSiteInfo(ctx context.Context, siteID uint) (*model.Site, error) {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return nil, errors.NotFound("couldn't find any site with the provided ID")
	}

	site.AllocatedBudget = decimal.Zero
	site.SiteManagerID = nil
	site.ProcurementManagerID = nil
	return site, nil
}

// bulkTransition moves an order and every one of its items to the target
// status in one transaction. The transition is legal only from the given
// source statuses.
func (s *orderService) bulkTransition(ctx context.Context, orderID uint, to model.Status, from ...model.Status) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context, reg repository.Registry) error {
		order, err := reg.Orders.FindByID(ctx, orderID)
		if err != nil {
			return errors.NotFound("order not found with the provided ID")
		}

		if !statusIn(order.Status, from) {
			return errors.BadRequest("order status cannot change to " + string(to) + " from " + string(order.Status))
		}

		if err := reg.OrderItems.UpdateStatusByOrder(ctx, orderID, to); err != nil {
			return errors.Internal("failed to update the order items")
		}

		order.Status = to
		if err := reg.Orders.Save(ctx, order); err != nil {
			return errors.Internal("failed to update the order")
		}
		return nil
	})
}

func statusIn(status model.Status, set []model.Status) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// SetAsApproved approves a pending order and all of its items.
func (s *orderService) SetAsApproved(ctx context.Context, caller *model.User, orderID uint) error {
	if err := authz.Authorize(caller.Role, model.PermissionProcurementManagerUpdate); err != nil {
		return err
	}
	return s.bulkTransition(ctx, orderID, model.StatusApproved, model.StatusPending)
}

// SetAsCancelled cancels a pending or approved order and all of its items.
// Cancelled is terminal; the order row is never removed.
func (s *orderService) SetAsCancelled(ctx context.Context, caller *model.User, orderID uint) error {
	if err := authz.Authorize(caller.Role, model.PermissionProcurementManagerUpdate); err != nil {
		return err
	}
	return s.bulkTransition(ctx, orderID, model.StatusCancelled, model.StatusPending, model.StatusApproved)
}

// SetAsDelivered marks an approved order delivered. Only the supplier
// assigned to the order may deliver it.
func (s *orderService) SetAsDelivered(ctx context.Context, caller *model.User, orderID uint) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return errors.NotFound("order not found with the provided ID")
	}
	if err := authz.Authorize(caller.Role, model.PermissionSupplierUpdate, authz.AssignedSupplier(caller, order)); err != nil {
		return err
	}
	return s.bulkTransition(ctx, orderID, model.StatusDelivered, model.StatusApproved)
}

// SetAsComplete completes an order and all of its items.
func (s *orderService) SetAsComplete(ctx context.Context, caller *model.User, orderID uint) error {
	if err := authz.Authorize(caller.Role, model.PermissionSiteManagerUpdate); err != nil {
		return err
	}
	return s.bulkTransition(ctx, orderID, model.StatusCompleted,
		model.StatusPending, model.StatusApproved, model.StatusDelivered)
}

// setItemStatus mutates a single order line without re-deriving the order's
// own status; the order-level bulk transitions are a convenience, not a
// strict aggregate invariant.
func (s *orderService) setItemStatus(ctx context.Context, caller *model.User, required model.Permission, orderItemID uint, status model.Status) error {
	if err := authz.Authorize(caller.Role, required); err != nil {
		return err
	}

	orderItem, err := s.orderItems.FindByID(ctx, orderItemID)
	if err != nil {
		return errors.NotFound("order item not found with the provided ID")
	}

	orderItem.Status = status
	if err := s.orderItems.Save(ctx, orderItem); err != nil {
		return errors.Internal("failed to update the order item")
	}
	return nil
}

// SetAsCompleteItem completes a single order line.
func (s *orderService) SetAsCompleteItem(ctx context.Context, caller *model.User, orderItemID uint) error {
	return s.setItemStatus(ctx, caller, model.PermissionSiteManagerUpdate, orderItemID, model.StatusCompleted)
}

// SetAsReturnItem marks a single order line returned.
func (s *orderService) SetAsReturnItem(ctx context.Context, caller *model.User, orderItemID uint) error {
	return s.setItemStatus(ctx, caller, model.PermissionSiteManagerUpdate, orderItemID, model.StatusReturned)
}

// SetAsDeliveredItem marks a single order line delivered.
func (s *orderService) SetAsDeliveredItem(ctx context.Context, caller *model.User, orderItemID uint) error {
	return s.setItemStatus(ctx, caller, model.PermissionSupplierUpdate, orderItemID, model.StatusDelivered)
}

// SetAsCancelledItem cancels a single order line.
func (s *orderService) SetAsCancelledItem(ctx context.Context, caller *model.User, orderItemID uint) error {
	return s.setItemStatus(ctx, caller, model.PermissionSupplierUpdate, orderItemID, model.StatusCancelled)
}
