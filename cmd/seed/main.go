package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	billingrepository "maison/internal/billing/repository"
	facilitiesrepository "maison/internal/facilities/repository"
	residentsrepository "maison/internal/residents/repository"
	"maison/pkg/auth"
	"maison/pkg/config"
	"maison/pkg/model"
)

const JobName = "seed"

// Demo data for local development. The seeder is idempotent only in
// the sense that duplicate usernames are skipped; facilities and bills
// are inserted every run.
func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "load demo data into the building database",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 60 * time.Second,
				Usage: "overall job timeout",
			},
			&cli.BoolFlag{
				Name:  "facilities",
				Value: true,
				Usage: "seed the facility catalog",
			},
			&cli.BoolFlag{
				Name:  "residents",
				Value: true,
				Usage: "seed demo residents",
			},
			&cli.BoolFlag{
				Name:  "bills",
				Value: false,
				Usage: "seed demo bills for the first resident",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func run(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	if c.Bool("facilities") {
		if err := seedFacilities(ctx, cfg); err != nil {
			return err
		}
	}
	if c.Bool("residents") {
		if err := seedResidents(ctx, cfg); err != nil {
			return err
		}
	}
	if c.Bool("bills") {
		if err := seedBills(ctx, cfg); err != nil {
			return err
		}
	}

	fmt.Println("Seed completed.")
	return nil
}

func seedFacilities(ctx context.Context, cfg *config.Config) error {
	repo := facilitiesrepository.NewMongoFacilityRepository(cfg)

	facilities := []*model.Facility{
		{Name: "Party Room", Category: "Events", OpenTime: "08:00", CloseTime: "22:00", Price: 150},
		{Name: "Gym", Category: "Fitness", OpenTime: "06:00", CloseTime: "23:00", Price: 0},
		{Name: "Pool", Category: "Leisure", OpenTime: "08:00", CloseTime: "20:00", Price: 0},
		{Name: "Barbecue Area", Category: "Events", OpenTime: "10:00", CloseTime: "22:00", Price: 80},
		{Name: "Tennis Court", Category: "Sports", OpenTime: "07:00", CloseTime: "21:00", Price: 40},
	}

	for _, facility := range facilities {
		if err := repo.Create(ctx, facility); err != nil {
			return fmt.Errorf("seed facility %q: %w", facility.Name, err)
		}
		fmt.Printf("Seeded facility %s (%s)\n", facility.Name, facility.ID)
	}
	return nil
}

func seedResidents(ctx context.Context, cfg *config.Config) error {
	repo := residentsrepository.NewMongoResidentRepository(cfg)

	residents := []struct {
		resident model.Resident
		password string
	}{
		{
			resident: model.Resident{
				Name: "Maria Silva", Role: "RESIDENT", Apartment: "301",
				Username: "maria.silva", Email: "maria@example.com", Status: config.ResidentActive,
			},
			password: "maria123",
		},
		{
			resident: model.Resident{
				Name: "Pedro Costa", Role: "RESIDENT", Apartment: "502",
				Username: "pedro.costa", Email: "pedro@example.com", Status: config.ResidentActive,
			},
			password: "pedro123",
		},
		{
			resident: model.Resident{
				Name: "Ana Souza", Role: "ADMIN",
				Username: "ana.souza", Email: "ana@example.com", Status: config.ResidentActive,
			},
			password: "admin123",
		},
	}

	for _, entry := range residents {
		hash, err := auth.HashPassword(entry.password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", entry.resident.Username, err)
		}
		entry.resident.PasswordHash = hash

		if err := repo.Create(ctx, &entry.resident); err != nil {
			fmt.Printf("Skipping resident %s: %v\n", entry.resident.Username, err)
			continue
		}
		fmt.Printf("Seeded resident %s (%s)\n", entry.resident.Username, entry.resident.ID)
	}
	return nil
}

func seedBills(ctx context.Context, cfg *config.Config) error {
	residentRepo := residentsrepository.NewMongoResidentRepository(cfg)
	billRepo := billingrepository.NewMongoBillRepository(cfg)

	residents, err := residentRepo.FindAll(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("load residents for billing: %w", err)
	}
	if len(residents) == 0 {
		return fmt.Errorf("no residents to bill; seed residents first")
	}

	month := time.Now().Format("January 2006")
	due := time.Now().AddDate(0, 0, 10).Format("2006-01-02")

	bills := []*model.Bill{
		{UserID: residents[0].ID, Category: "Electricity", Amount: 120.50, Month: month, DueDate: due, Status: config.BillUnpaid},
		{UserID: residents[0].ID, Category: "Water", Amount: 45.00, Month: month, DueDate: due, Status: config.BillUnpaid},
		{UserID: residents[0].ID, Category: "Service", Amount: 350.00, Month: month, DueDate: due, Status: config.BillUnpaid},
	}

	for _, bill := range bills {
		if err := billRepo.Create(ctx, bill); err != nil {
			return fmt.Errorf("seed bill %s: %w", bill.Category, err)
		}
		fmt.Printf("Seeded bill %s %s (%s)\n", bill.Category, bill.Month, bill.ID)
	}
	return nil
}
