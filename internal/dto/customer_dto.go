package dto

type CreateCustomerRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,max=40"`
	Address *string `json:"address" validate:"omitempty,max=240"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=120"`
	Phone   *string `json:"phone"   validate:"omitempty,max=40"`
	Address *string `json:"address" validate:"omitempty,max=240"`
}

type CustomerFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CustomerResponse struct {
	CustomerID string  `json:"customerId"`
	Name       string  `json:"name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	CreatedAt  string  `json:"createdAt"`
}
