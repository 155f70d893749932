package handler

import (
	"net/http"
	"strconv"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers *service.CustomerService
}

func NewCustomerHandler(customers *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Param        search  query  string  false  "Filter by name"
// @Success      200  {array}  dto.CustomerResponse
// @Security     BearerAuth
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	filter := dto.CustomerFilter{}
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	customers, total, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, service.CustomerToResponse(&customers[i]))
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary      Get a customer
// @Tags         customers
// @Param        id  path  string  true  "Customer id"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.CustomerToResponse(customer))
}

// Create godoc
// @Summary      Create a customer
// @Tags         customers
// @Param        payload  body  dto.CreateCustomerRequest  true  "Customer"
// @Success      201  {object}  dto.CustomerResponse
// @Security     BearerAuth
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	req := dto.CreateCustomerRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	customer, err := h.customers.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.CustomerToResponse(customer))
}

// Update godoc
// @Summary      Update a customer
// @Tags         customers
// @Param        id       path  string                     true  "Customer id"
// @Param        payload  body  dto.UpdateCustomerRequest  true  "Fields to change"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.UpdateCustomerRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.CustomerToResponse(customer))
}

// Delete godoc
// @Summary      Delete a customer
// @Description  Customers with sales on record cannot be deleted.
// @Tags         customers
// @Param        id  path  string  true  "Customer id"
// @Success      204
// @Failure      400  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
