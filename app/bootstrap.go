// app/bootstrap.go
package app

import (
	"context"
	"log"

	"loanledger/models"
)

// SeedDemoCatalog inserts a small starter catalog the first time the
// store is opened. No-op once any item exists.
func SeedDemoCatalog(ctx context.Context, a *App) {
	var n int64
	if err := a.DB.WithContext(ctx).Model(&models.Item{}).Count(&n).Error; err != nil {
		log.Printf("seed check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	seed := []models.ItemInput{
		{Name: "HDMI Cable 2m", Category: "Cables", Quantity: 10},
		{Name: "Projector", Category: "AV Equipment", Quantity: 2, Description: "1080p, remote included"},
		{Name: "Laptop Charger 65W", Category: "Chargers", Quantity: 5},
		{Name: "Whiteboard Markers", Category: "Stationery", Quantity: 20},
	}
	for _, in := range seed {
		if _, err := a.Repo.CreateItem(ctx, in); err != nil {
			log.Printf("seed item %q failed: %v", in.Name, err)
			return
		}
	}
	log.Printf("[BOOTSTRAP] seeded %d catalog items", len(seed))
}
