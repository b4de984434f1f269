package repository_test

import (
	"context"
	"testing"
	"time"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"
	"go-pos-terminal/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db       *gorm.DB
	sales    repository.SaleRepository
	cashier  model.User
	customer model.Customer
	coffee   *model.Product
	tea      *model.Product
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &ledgerFixture{db: db, sales: repository.NewSaleRepo(db)}

	f.cashier = model.User{Username: "jane", Password: "pw", FullName: "Jane Doe", Role: model.RoleCashier}
	require.NoError(t, db.Create(&f.cashier).Error)
	f.customer = model.Customer{Name: "John Smith"}
	require.NoError(t, db.Create(&f.customer).Error)

	f.coffee = newProduct("123456789", "Premium Coffee", "4.99", 100)
	f.tea = newProduct("987654321", "Organic Tea", "3.49", 75)
	require.NoError(t, db.Create(f.coffee).Error)
	require.NoError(t, db.Create(f.tea).Error)
	return f
}

// addSale records a sale at the given local time with one line per product
func (f *ledgerFixture) addSale(t *testing.T, at time.Time, customerID *uint, lines map[*model.Product]int) *model.Sale {
	t.Helper()
	sale := &model.Sale{
		CustomerID:    customerID,
		UserID:        f.cashier.ID,
		PaymentMethod: model.PaymentCash,
		SaleDate:      at,
	}
	total := decimal.Zero
	for p, qty := range lines {
		item := model.SaleItem{ProductID: p.ID, Quantity: qty, Price: p.Price}
		total = total.Add(item.Subtotal())
		sale.Items = append(sale.Items, item)
	}
	sale.TotalAmount = total
	sale.AmountPaid = total
	sale.ChangeGiven = decimal.Zero
	require.NoError(t, f.sales.Create(f.db, sale))
	return sale
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSaleRepo_CreateAndFind(t *testing.T) {
	f := newLedgerFixture(t)
	sale := f.addSale(t, day("2024-03-01 10:00"), nil, map[*model.Product]int{f.coffee: 2})

	got, err := f.sales.FindByID(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "9.98", got.TotalAmount.StringFixed(2))
	assert.Nil(t, got.CustomerID)

	_, err = f.sales.FindByID(context.Background(), sale.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepo_ListWithDateRange(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.addSale(t, day("2024-03-01 09:00"), &f.customer.ID, map[*model.Product]int{f.coffee: 1})
	f.addSale(t, day("2024-03-02 23:30"), nil, map[*model.Product]int{f.tea: 1})
	f.addSale(t, day("2024-03-03 00:10"), nil, map[*model.Product]int{f.tea: 2})

	all, err := f.sales.List(ctx, model.DateRange{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, day("2024-03-03 00:10").Unix(), all[0].SaleDate.Unix())
	require.NotNil(t, all[2].Customer)
	assert.Equal(t, "John Smith", *all[2].Customer)
	require.NotNil(t, all[2].Cashier)
	assert.Equal(t, "Jane Doe", *all[2].Cashier)
	assert.Nil(t, all[0].Customer)

	rng, err := model.ParseDateRange("2024-03-02", "2024-03-02")
	require.NoError(t, err)
	some, err := f.sales.List(ctx, rng)
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "3.49", some[0].TotalAmount.StringFixed(2))

	rng, err = model.ParseDateRange("2024-03-02", "")
	require.NoError(t, err)
	some, err = f.sales.List(ctx, rng)
	require.NoError(t, err)
	assert.Len(t, some, 2)
}

func TestSaleRepo_DetailToleratesDeletedProduct(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	sale := f.addSale(t, day("2024-03-01 10:00"), nil, map[*model.Product]int{f.coffee: 1, f.tea: 3})

	require.NoError(t, f.db.Delete(&model.Product{}, f.tea.ID).Error)

	detail, err := f.sales.FindDetail(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, detail.Lines, 2)

	names := map[uint]string{}
	for _, l := range detail.Lines {
		names[l.ProductID] = l.ProductName
	}
	assert.Equal(t, "Premium Coffee", names[f.coffee.ID])
	assert.Equal(t, repository.DeletedProductName, names[f.tea.ID])
	assert.Equal(t, model.PaymentCash, detail.PaymentMethod)

	_, err = f.sales.FindDetail(ctx, sale.ID+1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaleRepo_DeleteAndAggregate(t *testing.T) {
	f := newLedgerFixture(t)
	s1 := f.addSale(t, day("2024-03-01 10:00"), nil, map[*model.Product]int{f.coffee: 2, f.tea: 1})
	f.addSale(t, day("2024-03-02 10:00"), nil, map[*model.Product]int{f.coffee: 3})

	sums, err := f.sales.SumQuantitiesByProduct(f.db)
	require.NoError(t, err)
	assert.Equal(t, []repository.ProductQuantity{
		{ProductID: f.coffee.ID, Quantity: 5},
		{ProductID: f.tea.ID, Quantity: 1},
	}, sums)

	require.NoError(t, f.sales.Delete(f.db, s1.ID))
	var items int64
	require.NoError(t, f.db.Model(&model.SaleItem{}).Where("sale_id = ?", s1.ID).Count(&items).Error)
	assert.Zero(t, items)
	assert.ErrorIs(t, f.sales.Delete(f.db, s1.ID), gorm.ErrRecordNotFound)

	n, err := f.sales.DeleteAll(f.db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, f.db.Model(&model.SaleItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
