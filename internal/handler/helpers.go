package handler

import (
	"errors"
	"net/http"
	"reflect"

	"stockdash/internal/apierror"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validator has no native decimal support; expose decimals as float64
	// so numeric tags (min, gt, ...) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into obj and runs struct validation.
// On failure it writes the 400 response and returns false.
func bindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("malformed request body"))
		return false
	}
	return validateStruct(c, obj)
}

// bindQueryAndValidate decodes query parameters into obj.
func bindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("malformed query parameters"))
		return false
	}
	return validateStruct(c, obj)
}

func validateStruct(c *gin.Context, obj interface{}) bool {
	err := validate.Struct(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("invalid request"))
	return false
}

// parseIDParam reads a UUID path parameter or writes a 400.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service sentinels onto HTTP statuses. Anything
// unclassified is deferred to the error handler middleware as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInsufficientStock):
		c.AbortWithStatusJSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
