// RevenueLens - Sales Ingestion and Revenue Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revenuelens

package ingest

import (
	"github.com/tomtom215/revenuelens/internal/models"
)

// dimensions holds one representative row per distinct dimension id, in
// first-sighting order. Values index into the batch.
type dimensions struct {
	productIDs  []string
	products    map[string]int
	customerIDs []string
	customers   map[string]int
}

// groupDimensions makes a single pass over rows. The first row mentioning an
// id is its source of truth. Blank ids are skipped.
func groupDimensions(rows []Row) dimensions {
	d := dimensions{
		products:  make(map[string]int),
		customers: make(map[string]int),
	}
	for i := range rows {
		if id := rows[i].ProductID; id != "" {
			if _, seen := d.products[id]; !seen {
				d.products[id] = i
				d.productIDs = append(d.productIDs, id)
			}
		}
		if id := rows[i].CustomerID; id != "" {
			if _, seen := d.customers[id]; !seen {
				d.customers[id] = i
				d.customerIDs = append(d.customerIDs, id)
			}
		}
	}
	return d
}

// mergeProduct applies r to the stored product. Only non-empty incoming values
// overwrite. changed reports whether an update is needed.
func mergeProduct(stored models.Product, exists bool, r *Row) (p models.Product, changed bool) {
	if !exists {
		return models.Product{
			ID:       r.ProductID,
			Name:     r.ProductName,
			Category: models.OptionalString(r.Category),
		}, true
	}

	p = stored
	if r.ProductName != "" && r.ProductName != p.Name {
		p.Name = r.ProductName
		changed = true
	}
	changed = overwrite(&p.Category, r.Category) || changed
	return p, changed
}

// mergeCustomer applies r to the stored customer with update-if-present
// semantics for name, email and address.
func mergeCustomer(stored models.Customer, exists bool, r *Row) (c models.Customer, changed bool) {
	if !exists {
		return models.Customer{
			ID:      r.CustomerID,
			Name:    models.OptionalString(r.CustomerName),
			Email:   models.OptionalString(r.CustomerEmail),
			Address: models.OptionalString(r.CustomerAddress),
		}, true
	}

	c = stored
	changed = overwrite(&c.Name, r.CustomerName) || changed
	changed = overwrite(&c.Email, r.CustomerEmail) || changed
	changed = overwrite(&c.Address, r.CustomerAddress) || changed
	return c, changed
}

// overwrite sets *dst to incoming when incoming is non-empty and differs.
func overwrite(dst **string, incoming string) bool {
	if incoming == "" {
		return false
	}
	if *dst != nil && **dst == incoming {
		return false
	}
	v := incoming
	*dst = &v
	return true
}

// buildOrder converts r into an order. For an existing order an empty incoming
// customer id keeps the stored one; every other field is overwritten.
func buildOrder(r *Row, storedCustomer *string, exists bool) models.Order {
	o := models.Order{
		ID:            r.OrderID,
		OrderDate:     r.OrderDate,
		ProductID:     r.ProductID,
		CustomerID:    models.OptionalString(r.CustomerID),
		Region:        models.OptionalString(r.Region),
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		Discount:      r.Discount,
		ShippingCost:  r.ShippingCost,
		PaymentMethod: models.OptionalString(r.PaymentMethod),
	}
	if exists && o.CustomerID == nil {
		o.CustomerID = storedCustomer
	}
	return o
}
