package dto

type StockMovementFilter struct {
	ProductID string `form:"productId" validate:"omitempty,uuid"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"    validate:"min=1"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stockBefore"`
	StockAfter  int     `json:"stockAfter"`
	Reason      string  `json:"reason"`
	ReferenceID *string `json:"referenceId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

// EmailReportRequest asks for the current inventory report to be generated
// and mailed to the recipient.
type EmailReportRequest struct {
	To string `json:"to" validate:"required,email"`
}
