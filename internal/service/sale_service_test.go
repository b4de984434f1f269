package service

import (
	"errors"
	"testing"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func TestValidatePayment(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name   string
		total  string
		paid   string
		change string
		err    error
	}{
		{"exact", "9.98", "9.98", "0.00", nil},
		{"change due", "9.98", "10.00", "0.02", nil},
		{"short", "9.98", "9.97", "", ErrInsufficientPayment},
		{"negative paid", "9.98", "-1", "", ErrInvalidAmount},
		{"nothing owed", "0", "0", "0.00", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, err := ValidatePayment(d(tt.total), d(tt.paid))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.change, change.StringFixed(2))
		})
	}
}

func TestSale_ScanTwiceAndPayCash(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()

	_, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
	require.NoError(t, err)
	line, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, "9.98", cart.Total().StringFixed(2))

	receipt, err := f.sales.Finalize(f.ctx, cart, f.pay("10.00"))
	require.NoError(t, err)
	assert.Equal(t, "9.98", receipt.Total.StringFixed(2))
	assert.Equal(t, "0.02", receipt.Change.StringFixed(2))
	assert.Equal(t, model.PaymentCash, receipt.Method)
	assert.Nil(t, receipt.CustomerID)
	assert.NotZero(t, receipt.SaleID)

	assert.Equal(t, 98, f.stock(t, f.coffee.ID))
	assert.True(t, cart.IsEmpty())

	sale, err := f.saleRepo.FindByID(f.ctx, receipt.SaleID)
	require.NoError(t, err)
	assert.Equal(t, f.session.UserID, sale.UserID)
	assert.Equal(t, "10.00", sale.AmountPaid.StringFixed(2))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 2, sale.Items[0].Quantity)
}

func TestSale_AddByBarcodeUnknown(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	_, err := f.sales.AddByBarcode(f.ctx, cart, "000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, cart.IsEmpty())
}

func TestSale_PriceIsSnapshotted(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	_, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
	require.NoError(t, err)

	require.NoError(t, f.products.Update(f.ctx, f.coffee.ID, map[string]interface{}{"price": decimal.RequireFromString("6.00")}))

	receipt, err := f.sales.Finalize(f.ctx, cart, f.pay("5"))
	require.NoError(t, err)
	sale, err := f.saleRepo.FindByID(f.ctx, receipt.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "4.99", sale.Items[0].Price.StringFixed(2))
	assert.Equal(t, "4.99", sale.TotalAmount.StringFixed(2))
}

func TestSale_EmptyCart(t *testing.T) {
	f := newFixture(t, true)
	_, err := f.sales.Finalize(f.ctx, NewCart(), f.pay("10"))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.count(t, &model.Sale{}))
}

func TestSale_InsufficientPaymentPersistsNothing(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	_, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
	require.NoError(t, err)

	_, err = f.sales.Finalize(f.ctx, cart, f.pay("4.98"))
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.False(t, cart.IsEmpty())
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
}

func TestSale_PaymentMethodNormalized(t *testing.T) {
	f := newFixture(t, true)
	for method, want := range map[model.PaymentMethod]model.PaymentMethod{
		"card":   model.PaymentCard,
		"CARD":   model.PaymentCard,
		"cheque": model.PaymentCash,
	} {
		cart := NewCart()
		_, err := f.sales.AddByBarcode(f.ctx, cart, "987654321")
		require.NoError(t, err)
		req := f.pay("3.49")
		req.Method = method
		receipt, err := f.sales.Finalize(f.ctx, cart, req)
		require.NoError(t, err)
		assert.Equal(t, want, receipt.Method, method)
	}
}

func TestSale_AddByID(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()

	_, err := f.sales.AddByID(f.ctx, cart, f.tea.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.sales.AddByID(f.ctx, cart, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.sales.AddByID(f.ctx, cart, f.tea.ID, 76)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	line, err := f.sales.AddByID(f.ctx, cart, f.tea.ID, 70)
	require.NoError(t, err)
	assert.Equal(t, 70, line.Quantity)

	// what the cart already holds counts against stock
	_, err = f.sales.AddByID(f.ctx, cart, f.tea.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	line, err = f.sales.AddByID(f.ctx, cart, f.tea.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 75, line.Quantity)
}

func TestSale_StrictStockRollsBack(t *testing.T) {
	f := newFixture(t, true)
	low := f.addProduct(t, "555", "Rare Item", "10.00", 1)
	cart := NewCart()

	_, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
	require.NoError(t, err)
	// scanning skips the stock check, so the cart can exceed stock
	_, err = f.sales.AddByBarcode(f.ctx, cart, "555")
	require.NoError(t, err)
	_, err = f.sales.AddByBarcode(f.ctx, cart, "555")
	require.NoError(t, err)

	_, err = f.sales.Finalize(f.ctx, cart, f.pay("100"))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.Zero(t, f.count(t, &model.SaleItem{}))
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	assert.Equal(t, 1, f.stock(t, low.ID))
	assert.False(t, cart.IsEmpty())
}

func TestSale_LenientStockGoesNegative(t *testing.T) {
	f := newFixture(t, false)
	low := f.addProduct(t, "555", "Rare Item", "10.00", 1)
	cart := NewCart()
	require.NoError(t, cart.Add(low.ID, low.Name, low.Price, 3))

	_, err := f.sales.Finalize(f.ctx, cart, f.pay("30"))
	require.NoError(t, err)
	assert.Equal(t, -2, f.stock(t, low.ID))
}

func TestSale_DeletedProductOnLastLineRollsBack(t *testing.T) {
	for _, strict := range []bool{true, false} {
		f := newFixture(t, strict)
		cart := NewCart()
		_, err := f.sales.AddByBarcode(f.ctx, cart, "123456789")
		require.NoError(t, err)
		_, err = f.sales.AddByBarcode(f.ctx, cart, "987654321")
		require.NoError(t, err)

		require.NoError(t, f.products.Delete(f.ctx, f.tea.ID))

		_, err = f.sales.Finalize(f.ctx, cart, f.pay("20"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, f.count(t, &model.Sale{}))
		assert.Zero(t, f.count(t, &model.SaleItem{}))
		assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	}
}

// failingProducts fails the stock adjustment for one product
type failingProducts struct {
	repository.ProductRepository
	failOn uint
}

var errInjected = errors.New("injected failure")

func (r failingProducts) AdjustStock(tx *gorm.DB, id uint, delta int, strict bool) error {
	if id == r.failOn {
		return errInjected
	}
	return r.ProductRepository.AdjustStock(tx, id, delta, strict)
}

func TestSale_FinalizeIsAtomicUnderInjectedFailure(t *testing.T) {
	f := newFixture(t, true)
	water := f.addProduct(t, "789123456", "Bottled Water", "0.99", 150)
	svc := NewSaleService(failingProducts{f.products, water.ID}, f.customers, f.saleRepo, f.db, SaleOptions{StrictStock: true}, zaptest.NewLogger(t))

	cart := NewCart()
	require.NoError(t, cart.Add(f.coffee.ID, f.coffee.Name, f.coffee.Price, 2))
	require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
	require.NoError(t, cart.Add(water.ID, water.Name, water.Price, 4))
	cart.SelectCustomer(CustomerSelection{Mode: CustomerNew, New: &model.Customer{Name: "Walk In"}})

	_, err := svc.Finalize(f.ctx, cart, f.pay("50"))
	assert.ErrorIs(t, err, errInjected)

	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.Zero(t, f.count(t, &model.SaleItem{}))
	assert.Zero(t, f.count(t, &model.Customer{}))
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	assert.Equal(t, 75, f.stock(t, f.tea.ID))
	assert.Equal(t, 150, f.stock(t, water.ID))
}

func TestSale_Customers(t *testing.T) {
	f := newFixture(t, true)
	existing := &model.Customer{Name: "John Smith"}
	require.NoError(t, f.customers.Create(f.ctx, existing))

	t.Run("existing", func(t *testing.T) {
		cart := NewCart()
		require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
		cart.SelectCustomer(CustomerSelection{Mode: CustomerExisting, ID: existing.ID})
		r, err := f.sales.Finalize(f.ctx, cart, f.pay("5"))
		require.NoError(t, err)
		require.NotNil(t, r.CustomerID)
		assert.Equal(t, existing.ID, *r.CustomerID)
		assert.False(t, r.CustomerFallback)
	})

	t.Run("missing falls back to none", func(t *testing.T) {
		cart := NewCart()
		require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
		cart.SelectCustomer(CustomerSelection{Mode: CustomerExisting, ID: 4242})
		r, err := f.sales.Finalize(f.ctx, cart, f.pay("5"))
		require.NoError(t, err)
		assert.Nil(t, r.CustomerID)
		assert.True(t, r.CustomerFallback)
	})

	t.Run("new", func(t *testing.T) {
		cart := NewCart()
		require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
		phone := ""
		cart.SelectCustomer(CustomerSelection{Mode: CustomerNew, New: &model.Customer{Name: "  Ann Lee ", Phone: &phone}})
		r, err := f.sales.Finalize(f.ctx, cart, f.pay("5"))
		require.NoError(t, err)
		require.NotNil(t, r.CustomerID)

		c, err := f.customers.FindByID(f.ctx, *r.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", c.Name)
		assert.Nil(t, c.Phone)
	})

	t.Run("new without name", func(t *testing.T) {
		cart := NewCart()
		require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
		cart.SelectCustomer(CustomerSelection{Mode: CustomerNew, New: &model.Customer{}})
		_, err := f.sales.Finalize(f.ctx, cart, f.pay("5"))
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSale_DeleteRestoresStock(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	require.NoError(t, cart.Add(f.coffee.ID, f.coffee.Name, f.coffee.Price, 3))
	require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 5))

	receipt, err := f.sales.Finalize(f.ctx, cart, f.pay("50"))
	require.NoError(t, err)
	assert.Equal(t, 97, f.stock(t, f.coffee.ID))
	assert.Equal(t, 70, f.stock(t, f.tea.ID))

	require.NoError(t, f.sales.DeleteSale(f.ctx, receipt.SaleID))
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	assert.Equal(t, 75, f.stock(t, f.tea.ID))
	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.Zero(t, f.count(t, &model.SaleItem{}))

	assert.ErrorIs(t, f.sales.DeleteSale(f.ctx, receipt.SaleID), ErrNotFound)
}

func TestSale_DeleteSkipsDeletedProduct(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	require.NoError(t, cart.Add(f.coffee.ID, f.coffee.Name, f.coffee.Price, 1))
	require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
	receipt, err := f.sales.Finalize(f.ctx, cart, f.pay("10"))
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(f.ctx, f.tea.ID))

	require.NoError(t, f.sales.DeleteSale(f.ctx, receipt.SaleID))
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	assert.Zero(t, f.count(t, &model.Sale{}))
}

func TestSale_DeleteAllSales(t *testing.T) {
	f := newFixture(t, true)
	for _, qty := range []int{1, 2, 3} {
		cart := NewCart()
		require.NoError(t, cart.Add(f.coffee.ID, f.coffee.Name, f.coffee.Price, qty))
		require.NoError(t, cart.Add(f.tea.ID, f.tea.Name, f.tea.Price, 1))
		_, err := f.sales.Finalize(f.ctx, cart, f.pay("100"))
		require.NoError(t, err)
	}
	assert.Equal(t, 94, f.stock(t, f.coffee.ID))
	assert.Equal(t, 72, f.stock(t, f.tea.ID))

	n, err := f.sales.DeleteAllSales(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, 100, f.stock(t, f.coffee.ID))
	assert.Equal(t, 75, f.stock(t, f.tea.ID))
	assert.Zero(t, f.count(t, &model.Sale{}))
	assert.Zero(t, f.count(t, &model.SaleItem{}))

	n, err = f.sales.DeleteAllSales(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSale_ListAndDetail(t *testing.T) {
	f := newFixture(t, true)
	cart := NewCart()
	require.NoError(t, cart.Add(f.coffee.ID, f.coffee.Name, f.coffee.Price, 2))
	receipt, err := f.sales.Finalize(f.ctx, cart, f.pay("10"))
	require.NoError(t, err)

	rows, err := f.sales.ListSales(f.ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Cashier)
	assert.Equal(t, "Cathy Cashier", *rows[0].Cashier)

	detail, err := f.sales.GetSaleDetail(f.ctx, receipt.SaleID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "9.98", detail.Lines[0].Subtotal().StringFixed(2))
	assert.Equal(t, "0.02", detail.ChangeGiven.StringFixed(2))

	_, err = f.sales.GetSaleDetail(f.ctx, receipt.SaleID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}
