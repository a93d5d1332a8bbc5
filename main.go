package main

import (
	"context"
	"log"

	"loanledger/app"
	"loanledger/config"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	ctx := context.Background()
	app.SeedDemoCatalog(ctx, application)

	items, err := application.Repo.ListAvailableItems(ctx)
	if err != nil {
		log.Fatalf("list available items: %v", err)
	}
	loans, err := application.Repo.ListActiveLoans(ctx)
	if err != nil {
		log.Fatalf("list active loans: %v", err)
	}
	returns, err := application.Repo.ListReturns(ctx)
	if err != nil {
		log.Fatalf("list returns: %v", err)
	}

	log.Printf("%d items available, %d active loans, %d returns recorded",
		len(items), len(loans), len(returns))
	for _, it := range items {
		log.Printf("  %-14s %-24s %d/%d %s", it.ID, it.Name, it.AvailableQuantity, it.Quantity, it.Status)
	}
}
