package domain

// OrderMenuItem ties one sub-category selection to an order.
type OrderMenuItem struct {
	ID              string `json:"id,omitempty"`
	OrderID         string `json:"order_id"`
	SubCategoryID   string `json:"sub_category_id"`
	SubCategoryName string `json:"sub_category_name,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	Quantity        int    `json:"quantity"`
	Notes           string `json:"notes,omitempty"`
}

// OrderMenuSelection is an order's full menu: the selected items plus
// free-form notes for the kitchen.
type OrderMenuSelection struct {
	Items        []OrderMenuItem `json:"items"`
	GeneralNotes string          `json:"general_notes,omitempty"`
}

// OrderMenuUpdate replaces an order's menu selection wholesale.
type OrderMenuUpdate struct {
	Items        []OrderMenuItemRef `json:"items"`
	GeneralNotes string             `json:"general_notes,omitempty"`
}

// OrderMenuItemRef identifies one selected sub-category in an update.
type OrderMenuItemRef struct {
	OrderID       string `json:"order_id"`
	SubCategoryID string `json:"sub_category_id"`
	Quantity      int    `json:"quantity,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
