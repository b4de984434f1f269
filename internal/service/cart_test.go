package service

import (
	"testing"

	"go-pos-terminal/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var coffeePrice = decimal.RequireFromString("4.99")

func TestCart_RepeatedAddMergesIntoOneLine(t *testing.T) {
	for n := 1; n <= 5; n++ {
		cart := NewCart()
		for i := 0; i < n; i++ {
			require.NoError(t, cart.Add(1, "Premium Coffee", coffeePrice, 1))
		}
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, n, lines[0].Quantity)
	}
}

func TestCart_AddRejectsNonPositive(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.Add(1, "x", coffeePrice, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.Add(1, "x", coffeePrice, -3), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(1, "Premium Coffee", coffeePrice, 2))
	require.NoError(t, cart.Add(2, "Bottled Water", decimal.RequireFromString("0.99"), 3))
	assert.Equal(t, "12.95", cart.Total().StringFixed(2))
	assert.True(t, NewCart().Total().IsZero())
}

func TestCart_RemoveLine(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(1, "Premium Coffee", coffeePrice, 3))
	require.NoError(t, cart.Add(2, "Organic Tea", decimal.RequireFromString("3.49"), 1))

	assert.ErrorIs(t, cart.RemoveLine(0, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.RemoveLine(0, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.RemoveLine(0, 4), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.RemoveLine(2, 1), ErrNotFound)
	assert.ErrorIs(t, cart.RemoveLine(-1, 1), ErrNotFound)

	require.NoError(t, cart.RemoveLine(0, 2))
	assert.Equal(t, 1, cart.QuantityOf(1))

	require.NoError(t, cart.RemoveLine(0, 1))
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].ProductID)

	for _, l := range cart.Lines() {
		assert.Positive(t, l.Quantity)
	}
}

func TestCart_ClearForgetsCustomer(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(1, "Premium Coffee", coffeePrice, 1))
	cart.SelectCustomer(CustomerSelection{Mode: CustomerNew, New: &model.Customer{Name: "Ann"}})

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, CustomerNone, cart.Customer().Mode)
	assert.Nil(t, cart.Customer().New)
}

func TestCart_LinesIsACopy(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(1, "Premium Coffee", coffeePrice, 1))
	lines := cart.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, cart.QuantityOf(1))
}
