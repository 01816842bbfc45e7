package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryChargeTiers(t *testing.T) {
	cases := []struct {
		name       string
		itemsTotal float64
		want       float64
	}{
		{"small order pays 15 percent", 50, 7.50},
		{"just under low boundary", 99.99, 15.00}, // 14.9985 rounds up
		{"exactly 100 drops to 10 percent", 100, 10.00},
		{"mid tier", 400, 40.00},
		{"just under free boundary", 499.99, 50.00},
		{"exactly 500 ships free", 500, 0},
		{"large order ships free", 1250.40, 0},
		{"zero total", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeliveryCharge(tc.itemsTotal))
		})
	}
}

func TestOrderTotal(t *testing.T) {
	charge, total := OrderTotal(400)
	assert.Equal(t, 40.00, charge)
	assert.Equal(t, 440.00, total)

	charge, total = OrderTotal(99.99)
	assert.Equal(t, 15.00, charge)
	assert.Equal(t, 114.99, total)

	charge, total = OrderTotal(500)
	assert.Equal(t, 0.0, charge)
	assert.Equal(t, 500.00, total)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 400.00, LineTotal(200, 2))
	assert.Equal(t, 29.97, LineTotal(9.99, 3))
	// float noise must not leak into stored totals
	assert.Equal(t, 0.3, LineTotal(0.1, 3))
}

func TestSumLineTotals(t *testing.T) {
	assert.Equal(t, 60.30, SumLineTotals([]float64{29.97, 30.33}))
	assert.Equal(t, 0.0, SumLineTotals(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 14.99, Round2(14.9949))
	assert.Equal(t, 15.00, Round2(14.9985))
	assert.Equal(t, -2.35, Round2(-2.345))
}
