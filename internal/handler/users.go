package handler

import (
	"net/http"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler manages accounts. All routes are admin-only.
type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// List godoc
// @Summary      List users
// @Tags         users
// @Success      200  {array}  dto.UserResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, service.UserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary      Create a user
// @Tags         users
// @Param        payload  body  dto.CreateUserRequest  true  "User"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	req := dto.CreateUserRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.auth.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.UserToResponse(user))
}

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Param        id       path  string                 true  "User id"
// @Param        payload  body  dto.UpdateUserRequest  true  "Fields to change"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req := dto.UpdateUserRequest{}
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.auth.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.UserToResponse(user))
}

// Delete godoc
// @Summary      Deactivate a user
// @Description  Soft delete: the account stops authenticating but stays referenced.
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  apierror.APIError
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.auth.DeactivateUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
