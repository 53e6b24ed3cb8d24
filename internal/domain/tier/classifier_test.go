package tier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func classifierTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(validTiers())
	require.NoError(t, err)
	return table
}

func TestClassifyLesserOf(t *testing.T) {
	table := classifierTable(t)

	tests := []struct {
		name          string
		headcount     uint
		foodCostCents int64
		wantIndex     int
	}{
		{"both in first tier", 20, 25000, 0},
		{"both in second tier", 35, 45000, 1},
		{"headcount higher than food cost", 60, 50000, 1},
		{"food cost higher than headcount", 20, 70000, 0},
		{"both in top tier", 150, 200000, 2},
		{"headcount top but food cost first", 150, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := table.Classify(tt.headcount, tt.foodCostCents)
			require.Equal(t, tt.wantIndex, cls.Index)
			require.Equal(t, table.At(tt.wantIndex).ID, cls.Tier.ID)
		})
	}
}

func TestClassifyHeadcountBoundary(t *testing.T) {
	table := classifierTable(t)

	// 24 stays in the first band, 25 moves to the second
	require.Equal(t, 0, table.Classify(24, 45000).Index)
	require.Equal(t, 1, table.Classify(25, 45000).Index)
}

func TestClassifyFoodCostBoundary(t *testing.T) {
	table := classifierTable(t)

	// $299.99 stays in the first band, $300.00 moves to the second
	require.Equal(t, 0, table.Classify(35, 29999).Index)
	require.Equal(t, 1, table.Classify(35, 30000).Index)
}

func TestClassifyZeroValues(t *testing.T) {
	table := classifierTable(t)

	cls := table.Classify(0, 0)
	require.Equal(t, 0, cls.Index)
	require.Equal(t, 0, cls.HeadcountIndex)
	require.Equal(t, 0, cls.FoodCostIndex)
}

func TestClassifyAboveTopBand(t *testing.T) {
	table := classifierTable(t)

	cls := table.Classify(100000, 999999999)
	require.Equal(t, table.Len()-1, cls.Index)
}

func TestClassifyNegativeFoodCostClamped(t *testing.T) {
	table := classifierTable(t)

	require.Equal(t, 0, table.Classify(10, -500).Index)
}
