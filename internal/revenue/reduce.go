// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package revenue

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/revenuelens/internal/database"
	"github.com/tomtom215/revenuelens/internal/models"
)

// groupKey is a nullable group value usable as a map key.
type groupKey struct {
	valid bool
	value string
}

func keyOf(s *string) groupKey {
	if s == nil {
		return groupKey{}
	}
	return groupKey{valid: true, value: *s}
}

func (k groupKey) ptr() *string {
	if !k.valid {
		return nil
	}
	v := k.value
	return &v
}

// reduce evaluates NetRevenue per order and sums it by g. The grouping rules
// mirror the store queries: category only counts orders whose product
// resolves, product groups carry the resolved name, and the ungrouped total
// always yields one group.
func reduce(figures []models.OrderFigures, g database.Grouping) []database.RevenueGroup {
	sums := make(map[groupKey]decimal.Decimal)
	names := make(map[groupKey]*string)
	var order []groupKey

	add := func(k groupKey, v decimal.Decimal) {
		cur, ok := sums[k]
		if !ok {
			order = append(order, k)
		}
		sums[k] = cur.Add(v)
	}

	if g == database.GroupNone {
		add(groupKey{}, decimal.Zero)
	}

	for i := range figures {
		fig := &figures[i]
		var k groupKey
		switch g {
		case database.GroupProduct:
			k = groupKey{valid: true, value: fig.ProductID}
			if fig.ProductResolved {
				name := models.StringValue(fig.ProductName)
				names[k] = &name
			}
		case database.GroupCategory:
			if !fig.ProductResolved {
				continue
			}
			k = keyOf(fig.Category)
		case database.GroupRegion:
			k = keyOf(fig.Region)
		}
		add(k, fig.NetRevenue())
	}

	groups := make([]database.RevenueGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, database.RevenueGroup{Key: k.ptr(), Name: names[k], Revenue: sums[k]})
	}
	return groups
}

// normalize rounds every group to the revenue scale and sorts by key with the
// nil key first, so both computation paths return identical values in
// identical order.
func normalize(groups []database.RevenueGroup) []database.RevenueGroup {
	for i := range groups {
		groups[i].Revenue = models.NormalizeRevenue(groups[i].Revenue)
	}
	slices.SortFunc(groups, func(a, b database.RevenueGroup) int {
		switch {
		case a.Key == nil && b.Key == nil:
			return 0
		case a.Key == nil:
			return -1
		case b.Key == nil:
			return 1
		}
		return cmp.Compare(*a.Key, *b.Key)
	})
	return groups
}
