package model

// Status is the lifecycle state shared by orders and order items.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCancelled Status = "Cancelled"
	StatusDelivered Status = "Delivered"
	StatusCompleted Status = "Completed"
	StatusReturned  Status = "Returned"
)
