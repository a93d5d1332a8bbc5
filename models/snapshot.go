// models/snapshot.go
package models

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReturnedItem is the serialization contract for one line item inside
// returns.items_json. Field names are part of the stored format.
type ReturnedItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// SnapshotLoanItems copies a loan's line items into the return format.
func SnapshotLoanItems(items []LoanItem) []ReturnedItem {
	out := make([]ReturnedItem, 0, len(items))
	for _, li := range items {
		out = append(out, ReturnedItem{
			ItemID:   li.ItemID,
			Name:     li.ItemName,
			Category: li.Category,
			Quantity: li.Quantity,
		})
	}
	return out
}

// DistinctCategories returns the sorted set of categories among items.
func DistinctCategories(items []ReturnedItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}

func EncodeReturnedItems(items []ReturnedItem) (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeReturnedItems(raw string) ([]ReturnedItem, error) {
	if raw == "" {
		return nil, nil
	}
	var items []ReturnedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func EncodeCategories(categories []string) (string, error) {
	b, err := json.Marshal(categories)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeCategories(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
