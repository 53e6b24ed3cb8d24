package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"github.com/readysethq/ratecard/internal/api/dto"
	"github.com/readysethq/ratecard/internal/config"
	"github.com/readysethq/ratecard/internal/logger"
	"github.com/readysethq/ratecard/internal/service"
	"github.com/readysethq/ratecard/internal/validator"
)

func main() {
	var (
		clientID  string
		headcount uint
		foodCost  float64
		mileage   float64
		drives    uint
		bridge    bool
		toll      float64
		tips      float64
		bonus     bool
	)

	flag.StringVar(&clientID, "client", "", "Client identifier ex cater-valley")
	flag.UintVar(&headcount, "headcount", 0, "Order headcount")
	flag.Float64Var(&foodCost, "food-cost", 0, "Order food cost in dollars")
	flag.Float64Var(&mileage, "mileage", 0, "Delivery distance in miles")
	flag.UintVar(&drives, "drives", 1, "Number of drives/stops")
	flag.BoolVar(&bridge, "bridge", false, "Route crosses a toll bridge")
	flag.Float64Var(&toll, "toll", 0, "Bridge toll in dollars")
	flag.Float64Var(&tips, "tips", 0, "Direct tip in dollars")
	flag.BoolVar(&bonus, "bonus", false, "Drive qualifies for the flat bonus")
	flag.Parse()

	validator.NewValidator()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		logg.Fatalf("invalid pricing configuration: %v", err)
	}

	req := &dto.QuoteRequest{
		ClientID:        clientID,
		Headcount:       headcount,
		FoodCostCents:   dollarsToCents(foodCost),
		TotalMileage:    decimal.NewFromFloat(mileage),
		NumberOfDrives:  drives,
		RequiresBridge:  bridge,
		BridgeTollCents: dollarsToCents(toll),
		TipsCents:       dollarsToCents(tips),
		BonusQualified:  bonus,
	}
	if err := req.Validate(); err != nil {
		logg.Errorf("invalid request: %v", err)
		flag.Usage()
		os.Exit(2)
	}

	svc := service.NewPricingService(service.ServiceParams{
		Logger:   logg,
		Config:   cfg,
		Registry: registry,
	})

	ctx := context.Background()
	result, err := svc.Calculate(ctx, req.ClientID, req.ToInput())
	if err != nil {
		logg.Fatalf("calculation failed: %v", err)
	}

	printJSON(dto.NewQuoteResponse(result))
}

func dollarsToCents(dollars float64) int64 {
	return decimal.NewFromFloat(dollars).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode response: %v", err)
	}
	fmt.Println(string(out))
}
