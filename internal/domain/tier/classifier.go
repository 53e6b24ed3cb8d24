package tier

// Classification is the outcome of resolving an order against a tier table.
// Index is the tier used for both the customer fee and the driver base pay
// lookups.
type Classification struct {
	Index          int
	Tier           Tier
	HeadcountIndex int
	FoodCostIndex  int
}

// Classify resolves the applicable tier for an order. The headcount band and
// the food cost band are located independently and the lower-index (cheaper)
// tier wins. Values above the highest configured band fall into the
// open-ended top tier; zero values resolve to the first tier.
func (t *Table) Classify(headcount uint, foodCostCents int64) Classification {
	headcountIdx := t.headcountIndex(headcount)
	foodCostIdx := t.foodCostIndex(foodCostCents)

	idx := headcountIdx
	if foodCostIdx < idx {
		idx = foodCostIdx
	}

	return Classification{
		Index:          idx,
		Tier:           t.tiers[idx],
		HeadcountIndex: headcountIdx,
		FoodCostIndex:  foodCostIdx,
	}
}

func (t *Table) headcountIndex(headcount uint) int {
	for i, band := range t.tiers {
		if band.MaxHeadcount == nil {
			return i
		}
		if headcount <= *band.MaxHeadcount {
			return i
		}
	}
	return len(t.tiers) - 1
}

func (t *Table) foodCostIndex(foodCostCents int64) int {
	if foodCostCents < 0 {
		foodCostCents = 0
	}
	for i, band := range t.tiers {
		if band.MaxFoodCostCents == nil {
			return i
		}
		if foodCostCents <= *band.MaxFoodCostCents {
			return i
		}
	}
	return len(t.tiers) - 1
}
