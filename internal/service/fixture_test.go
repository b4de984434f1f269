package service

import (
	"context"
	"testing"
	"time"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/repository"
	"go-pos-terminal/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	ctx       context.Context
	db        *gorm.DB
	products  repository.ProductRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	saleRepo  repository.SaleRepository
	sales     SaleService
	session   *Session
	coffee    *model.Product
	tea       *model.Product
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		ctx:       context.Background(),
		db:        db,
		products:  repository.NewProductRepo(db),
		customers: repository.NewCustomerRepo(db),
		users:     repository.NewUserRepo(db),
		saleRepo:  repository.NewSaleRepo(db),
	}
	f.sales = NewSaleService(f.products, f.customers, f.saleRepo, db, SaleOptions{StrictStock: strict}, zaptest.NewLogger(t))

	cashier := &model.User{Username: "cashier1", Password: "secret", FullName: "Cathy Cashier", Role: model.RoleCashier}
	require.NoError(t, f.users.Create(f.ctx, cashier))
	f.session = &Session{ID: uuid.New(), UserID: cashier.ID, Username: cashier.Username, FullName: cashier.FullName, Role: cashier.Role, StartedAt: time.Now()}

	f.coffee = f.addProduct(t, "123456789", "Premium Coffee", "4.99", 100)
	f.tea = f.addProduct(t, "987654321", "Organic Tea", "3.49", 75)
	return f
}

func (f *fixture) addProduct(t *testing.T, barcode, name, price string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{Barcode: &barcode, Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, f.products.Create(f.ctx, p))
	return p
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.products.FindByID(f.ctx, id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func (f *fixture) pay(amount string) FinalizeRequest {
	return FinalizeRequest{Cashier: f.session, AmountPaid: decimal.RequireFromString(amount), Method: model.PaymentCash}
}
