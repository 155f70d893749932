package service

import (
	"context"
	"testing"

	"stockdash/internal/dto"
	"stockdash/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture(t *testing.T) (*CustomerService, *stubCustomerRepo, *stubSaleRepo) {
	t.Helper()
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo()
	svc := NewCustomerService(customers, sales, nil, zerolog.Nop())
	return svc, customers, sales
}

func TestCustomerCRUD(t *testing.T) {
	svc, _, _ := newCustomerFixture(t)
	ctx := context.Background()

	phone := "555-0100"
	created, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Acme", Phone: &phone})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	require.NotNil(t, fetched.Phone)
	assert.Equal(t, phone, *fetched.Phone)

	newName := "Acme Corp"
	updated, err := svc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCustomerBlockedBySales(t *testing.T) {
	svc, _, sales := newCustomerFixture(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, sales.CreateTx(nil, &model.Sale{
		ProductID:  uuid.New(),
		CustomerID: customer.ID,
		Quantity:   1,
		UnitPrice:  dec("10.00"),
	}))

	err = svc.Delete(ctx, customer.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Get(ctx, customer.ID)
	assert.NoError(t, err)
}

func TestCustomerNotFound(t *testing.T) {
	svc, _, _ := newCustomerFixture(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	name := "x"
	_, err = svc.Update(ctx, uuid.New(), dto.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
