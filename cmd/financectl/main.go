// financectl is the personal-finance automation CLI. It writes finance
// records to the same store the server uses and reads back the valid ones
// for the external reporting pipeline.
//
// Usage:
//
//	financectl add -income 1200 -debt 300 -savings 450 [-note "august"]
//	financectl list
//	financectl summary
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/proplusapp/proplus/internal/logging"
	"github.com/proplusapp/proplus/internal/server"
	"github.com/proplusapp/proplus/internal/server/config"
	"github.com/proplusapp/proplus/internal/server/events"
	financerepo "github.com/proplusapp/proplus/internal/server/repositories/finance"
	"github.com/proplusapp/proplus/internal/server/services"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: financectl <add|list|summary> [flags]")
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	// the CLI shares the server's environment surface (.env included)
	config.ApplyEnv(cfg)

	ctx := context.Background()

	db, err := server.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := server.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			return fmt.Errorf("amqp init error: %w", err)
		}
		defer p.Close()
		publisher = p
	}

	svc := services.NewFinanceService(financerepo.NewPostgresRepository(db), publisher, logging.NewJSON())

	switch args[0] {
	case "add":
		return cmdAdd(ctx, svc, args[1:])
	case "list":
		return cmdList(ctx, svc)
	case "summary":
		return cmdSummary(ctx, svc)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func cmdAdd(ctx context.Context, svc *services.FinanceService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	income := fs.Int64("income", 0, "income amount")
	debt := fs.Int64("debt", 0, "debt amount")
	savings := fs.Int64("savings", 0, "savings amount")
	note := fs.String("note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := services.AddRecordInput{Income: *income, Debt: *debt, Savings: *savings}
	if *note != "" {
		input.Note = note
	}

	record, err := svc.Add(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("saved record %s at %s\n", record.ID, record.TS.Format("2006-01-02 15:04:05"))
	return nil
}

func cmdList(ctx context.Context, svc *services.FinanceService) error {
	records, err := svc.List(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no records")
		return nil
	}

	for _, r := range records {
		fmt.Printf("%s  income=%d debt=%d savings=%d", r.TS.Format("2006-01-02"), *r.Income, *r.Debt, *r.Savings)
		if r.Note != nil {
			fmt.Printf("  note=%q", *r.Note)
		}
		fmt.Println()
	}
	return nil
}

func cmdSummary(ctx context.Context, svc *services.FinanceService) error {
	summary, err := svc.Summary(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("records: %d\n", summary.Count)
	if summary.Count == 0 {
		return nil
	}
	fmt.Printf("avg income:  %.2f\n", summary.AvgIncome)
	fmt.Printf("avg debt:    %.2f\n", summary.AvgDebt)
	fmt.Printf("avg savings: %.2f\n", summary.AvgSavings)
	if summary.Latest != nil {
		fmt.Printf("latest:      %s (income=%d debt=%d savings=%d)\n",
			summary.Latest.TS.Format("2006-01-02"), *summary.Latest.Income, *summary.Latest.Debt, *summary.Latest.Savings)
	}
	return nil
}
