package commands_test

import (
	"errors"
	"testing"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/model/product"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, paise int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(paise)
	require.NoError(t, err)
	return m
}

func fixtureProduct(t *testing.T, id kernel.UUID, name string, pricePaise int64, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, name, mustMoney(t, pricePaise), "pc", 1, stock)
	require.NoError(t, err)
	return p
}

func fixtureSettings(t *testing.T) commands.Settings {
	t.Helper()
	return commands.Settings{
		DeliveryFee:  mustMoney(t, 2000),
		MinimumOrder: mustMoney(t, 10000),
	}
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: productID, Quantity: 2},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: addressID, IsDefault: true}}, nil).Once()

	apples := fixtureProduct(t, productID, "Apples", 6000, 10)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockPlacementUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("GetMany", mock.Anything, mock.Anything).
			Return(map[string]*product.Product{productID.String(): apples}, nil).Once(),
		productRepo.On("Reserve", mock.Anything, productID, 2).Return(8, nil).Once(),
		orderRepo.On("ExistsWithNumber", mock.Anything, mock.AnythingOfType("string")).
			Return(false, nil).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Regexp(t, `^ORD-\d{8}-\d{4}$`, created.Number())
	assert.Equal(t, order.StatusPending, created.Status())
	assert.True(t, created.CustomerID().IsEqual(customerID))
	assert.True(t, created.AddressID().IsEqual(addressID))
	require.Len(t, created.Items(), 1)
	assert.Equal(t, "Apples", created.Items()[0].ProductName())
	assert.Equal(t, int64(12000), created.Subtotal().Paise())
	assert.Equal(t, int64(14000), created.Total().Paise())
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_AddressResolution(t *testing.T) {
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	defaultAddr := kernel.NewUUID()
	otherAddr := kernel.NewUUID()

	run := func(t *testing.T, requested *kernel.UUID, addresses []ports.Address) (*order.Order, error) {
		t.Helper()
		cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
			{ProductID: productID, Quantity: 2},
		}, requested, "cash")
		require.NoError(t, err)

		reader := new(MockAddressReader)
		reader.On("GetForCustomer", mock.Anything, customerID).Return(addresses, nil).Once()

		apples := fixtureProduct(t, productID, "Apples", 6000, 10)
		productRepo := new(MockProductRepository)
		productRepo.On("GetMany", mock.Anything, mock.Anything).
			Return(map[string]*product.Product{productID.String(): apples}, nil).Maybe()
		productRepo.On("Reserve", mock.Anything, productID, 2).Return(8, nil).Maybe()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("ExistsWithNumber", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Maybe()
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Maybe()

		uow := new(MockPlacementUoW)
		uow.On("Begin", mock.Anything).Return(nil).Maybe()
		uow.On("ProductRepository").Return(productRepo).Maybe()
		uow.On("OrderRepository").Return(orderRepo).Maybe()
		uow.On("Commit", mock.Anything).Return(nil).Maybe()
		uow.On("Rollback", mock.Anything).Return(nil).Maybe()

		factory := new(MockPlacementUoWFactory)
		factory.On("Create").Return(uow).Maybe()

		h := commands.NewPlaceOrderCommandHandler(factory, reader, services.NewOrderNumberGenerator(), fixtureSettings(t))
		return h.Handle(t.Context(), cmd)
	}

	t.Run("supplied address wins when it belongs to the customer", func(t *testing.T) {
		created, err := run(t, &otherAddr, []ports.Address{
			{ID: defaultAddr, IsDefault: true},
			{ID: otherAddr},
		})
		require.NoError(t, err)
		assert.True(t, created.AddressID().IsEqual(otherAddr))
	})

	t.Run("foreign supplied address falls back to default", func(t *testing.T) {
		foreign := kernel.NewUUID()
		created, err := run(t, &foreign, []ports.Address{
			{ID: defaultAddr, IsDefault: true},
			{ID: otherAddr},
		})
		require.NoError(t, err)
		assert.True(t, created.AddressID().IsEqual(defaultAddr))
	})

	t.Run("sole address used when no default", func(t *testing.T) {
		created, err := run(t, nil, []ports.Address{{ID: otherAddr}})
		require.NoError(t, err)
		assert.True(t, created.AddressID().IsEqual(otherAddr))
	})

	t.Run("no resolvable address", func(t *testing.T) {
		_, err := run(t, nil, []ports.Address{{ID: defaultAddr}, {ID: otherAddr}})
		require.ErrorIs(t, err, commands.ErrNoAddress)
	})
}

func TestPlaceOrderCommandHandler_Handle_StockValidationCollectsAllIssues(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	lowStock := kernel.NewUUID()
	outOfStock := kernel.NewUUID()
	inStock := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: lowStock, Quantity: 5},
		{ProductID: inStock, Quantity: 1},
		{ProductID: outOfStock, Quantity: 2},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: addressID, IsDefault: true}}, nil).Once()

	products := map[string]*product.Product{
		lowStock.String():   fixtureProduct(t, lowStock, "Milk", 3000, 2),
		outOfStock.String(): fixtureProduct(t, outOfStock, "Eggs", 4000, 0),
		inStock.String():    fixtureProduct(t, inStock, "Bread", 2500, 10),
	}

	productRepo := new(MockProductRepository)
	productRepo.On("GetMany", mock.Anything, mock.Anything).Return(products, nil).Once()
	productRepo.On("Reserve", mock.Anything, lowStock, 5).
		Return(0, &product.InsufficientStockError{ProductID: lowStock, Requested: 5, Available: 2}).Once()
	productRepo.On("Reserve", mock.Anything, inStock, 1).Return(9, nil).Once()
	productRepo.On("Reserve", mock.Anything, outOfStock, 2).
		Return(0, &product.InsufficientStockError{ProductID: outOfStock, Requested: 2, Available: 0}).Once()

	orderRepo := new(MockOrderRepository)

	uow := new(MockPlacementUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrStockValidation)

	var stockErr *commands.StockValidationError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Issues, 2)
	assert.True(t, stockErr.Issues[0].ProductID.IsEqual(lowStock))
	assert.Equal(t, 5, stockErr.Issues[0].Requested)
	assert.Equal(t, 2, stockErr.Issues[0].Available)
	assert.True(t, stockErr.Issues[1].ProductID.IsEqual(outOfStock))

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_BelowMinimumOrder(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: productID, Quantity: 1},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: kernel.NewUUID(), IsDefault: true}}, nil).Once()

	cheap := fixtureProduct(t, productID, "Gum", 500, 10)

	productRepo := new(MockProductRepository)
	productRepo.On("GetMany", mock.Anything, mock.Anything).
		Return(map[string]*product.Product{productID.String(): cheap}, nil).Once()
	productRepo.On("Reserve", mock.Anything, productID, 1).Return(9, nil).Once()

	orderRepo := new(MockOrderRepository)

	uow := new(MockPlacementUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBelowMinimumOrder)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: productID, Quantity: 1},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: kernel.NewUUID(), IsDefault: true}}, nil).Once()

	productRepo := new(MockProductRepository)
	productRepo.On("GetMany", mock.Anything, mock.Anything).
		Return(map[string]*product.Product{}, nil).Once()

	orderRepo := new(MockOrderRepository)

	uow := new(MockPlacementUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPlaceOrderCommandHandler_Handle_InactiveProduct(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: productID, Quantity: 1},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: kernel.NewUUID(), IsDefault: true}}, nil).Once()

	retired, err := product.RestoreProduct(productID, "Retired", mustMoney(t, 6000), "pc", 1, 10, false)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	productRepo.On("GetMany", mock.Anything, mock.Anything).
		Return(map[string]*product.Product{productID.String(): retired}, nil).Once()

	orderRepo := new(MockOrderRepository)

	uow := new(MockPlacementUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrProductInactive)
	productRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(customerID, []commands.ItemRequest{
		{ProductID: productID, Quantity: 2},
	}, nil, "cash")
	require.NoError(t, err)

	addresses := new(MockAddressReader)
	addresses.On("GetForCustomer", mock.Anything, customerID).
		Return([]ports.Address{{ID: kernel.NewUUID(), IsDefault: true}}, nil).Once()

	apples := fixtureProduct(t, productID, "Apples", 6000, 10)

	productRepo := new(MockProductRepository)
	productRepo.On("GetMany", mock.Anything, mock.Anything).
		Return(map[string]*product.Product{productID.String(): apples}, nil).Once()
	productRepo.On("Reserve", mock.Anything, productID, 2).Return(8, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ExistsWithNumber", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	uow := new(MockPlacementUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, addresses, services.NewOrderNumberGenerator(), fixtureSettings(t))
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
}
