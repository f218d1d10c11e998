package models

type AddToCartRequest struct {
	ProductID int `json:"productId" example:"1"`
	Quantity  int `json:"quantity" example:"1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" example:"2"`
}

// CheckoutRequest accepts the customer either nested under customerInfo or as
// flat name/email fields. The nested form wins when present.
type CheckoutRequest struct {
	CustomerInfo *CustomerInfo `json:"customerInfo,omitempty"`
	Name         string        `json:"name,omitempty"`
	Email        string        `json:"email,omitempty"`
}

func (r CheckoutRequest) Customer() CustomerInfo {
	if r.CustomerInfo != nil {
		return *r.CustomerInfo
	}
	return CustomerInfo{Name: r.Name, Email: r.Email}
}
