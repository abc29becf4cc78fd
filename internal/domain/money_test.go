package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		wantAdvance int64
		wantBalance int64
	}{
		{name: "round total", total: 100000, wantAdvance: 80000, wantBalance: 20000},
		{name: "small total", total: 1000, wantAdvance: 800, wantBalance: 200},
		{name: "indivisible total rounds advance", total: 999, wantAdvance: 799, wantBalance: 200},
		{name: "single unit", total: 1, wantAdvance: 1, wantBalance: 0},
		{name: "zero", total: 0, wantAdvance: 0, wantBalance: 0},
		{name: "typical salon price", total: 149900, wantAdvance: 119920, wantBalance: 29980},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, balance := SplitAmount(tt.total)
			assert.Equal(t, tt.wantAdvance, advance)
			assert.Equal(t, tt.wantBalance, balance)
			assert.Equal(t, tt.total, advance+balance, "advance + balance must equal total")
			assert.GreaterOrEqual(t, balance, int64(0))
		})
	}
}
