package models

import "time"

// UploadStatus is the backend approval state of a customer-uploaded image.
type UploadStatus string

const (
	UploadStatusApproved  UploadStatus = "approved"
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusError     UploadStatus = "error"
)

func (s UploadStatus) IsValid() bool {
	switch s {
	case UploadStatusApproved, UploadStatusPending, UploadStatusUploading, UploadStatusError:
		return true
	}

	return false
}

type CustomImage struct {
	ID           string       `json:"id"`
	URL          string       `json:"url"`
	Name         string       `json:"name"`
	UploadStatus UploadStatus `json:"uploadStatus"`
}

// CartLineItem is one purchasable row in the cart. A plain catalog product
// appears at most once (adds merge into quantity); customized products always
// get their own line. OrderID is empty until the line has been attached to a
// backend-created order.
type CartLineItem struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Price         float64       `json:"price"`
	Image         string        `json:"image"`
	Description   string        `json:"description"`
	Quantity      int           `json:"quantity"`
	CustomImages  []CustomImage `json:"customImages,omitempty"`
	AddedAt       time.Time     `json:"addedAt"`
	ApprovedCount *int          `json:"approvedCount,omitempty"`
	PendingCount  *int          `json:"pendingCount,omitempty"`
	OrderID       string        `json:"orderId,omitempty"`
}

// IsCustom reports whether this line carries customer-uploaded images.
func (li CartLineItem) IsCustom() bool {
	return len(li.CustomImages) > 0
}

func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type AddItemRequest struct {
	ProductID   int64   `json:"product_id"  validate:"required"`
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"min=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

type CustomImageInput struct {
	ID           string       `json:"id"            validate:"required"`
	URL          string       `json:"url"           validate:"required,url"`
	Name         string       `json:"name"`
	UploadStatus UploadStatus `json:"upload_status" validate:"required,oneof=approved pending uploading error"`
}

type AddCustomItemRequest struct {
	ProductID   int64              `json:"product_id" validate:"required"`
	Name        string             `json:"name"       validate:"required"`
	Price       float64            `json:"price"      validate:"min=0"`
	Image       string             `json:"image"`
	Description string             `json:"description"`
	Images      []CustomImageInput `json:"images"     validate:"required,min=1,dive"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	// Zero or negative removes the line. A policy, not an error.
	Quantity int `json:"quantity"`
}

type CartView struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
}

type OrderGroup struct {
	OrderID string         `json:"order_id"`
	Items   []CartLineItem `json:"items"`
}

type OrderGroupsView struct {
	OrderIDs []string     `json:"order_ids"`
	Groups   []OrderGroup `json:"groups"`
}
