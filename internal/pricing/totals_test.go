package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_Empty(t *testing.T) {
	out := ComputeTotals([]Item{})

	//空カートでも送料はかかる
	assert.Equal(t, Totals{Subtotal: 0, ShippingFee: 150, Tax: 0, Total: 150}, out)
}

func TestComputeTotals_Nil(t *testing.T) {
	out := ComputeTotals(nil)
	assert.Equal(t, int64(150), out.Total)
}

func TestComputeTotals_SingleItem(t *testing.T) {
	out := ComputeTotals([]Item{{UnitPrice: 8500, Quantity: 1}})

	//8500 × 0.08 = 680 ちょうど
	assert.Equal(t, Totals{Subtotal: 8500, ShippingFee: 150, Tax: 680, Total: 9330}, out)
}

func TestComputeTotals_TaxRoundsDown(t *testing.T) {
	out := ComputeTotals([]Item{{UnitPrice: 100, Quantity: 3}})

	//300 × 0.08 = 24、total = 300 + 150 + 24
	assert.Equal(t, int64(300), out.Subtotal)
	assert.Equal(t, int64(24), out.Tax)
	assert.Equal(t, int64(474), out.Total)
}

func TestComputeTotals_MultipleLines(t *testing.T) {
	out := ComputeTotals([]Item{
		{UnitPrice: 1000, Quantity: 3},
		{UnitPrice: 250, Quantity: 2},
	})

	assert.Equal(t, int64(3500), out.Subtotal)
	assert.Equal(t, int64(280), out.Tax)
	assert.Equal(t, int64(3500+150+280), out.Total)
}

func TestComputeTotals_PureAndIdempotent(t *testing.T) {
	items := []Item{{UnitPrice: 8500, Quantity: 2}}

	first := ComputeTotals(items)
	second := ComputeTotals(items)

	assert.Equal(t, first, second)
	//入力は変更されない
	assert.Equal(t, []Item{{UnitPrice: 8500, Quantity: 2}}, items)
}
