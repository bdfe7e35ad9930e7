package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bill-collection-dashboard/internal/application/dashboard"
	"github.com/garyjia/bill-collection-dashboard/internal/application/port"
	"github.com/garyjia/bill-collection-dashboard/internal/infrastructure/external/backend"
	"github.com/garyjia/bill-collection-dashboard/internal/render"
	"github.com/garyjia/bill-collection-dashboard/pkg/utils"
)

// consoleSurface prints every view it is shown
type consoleSurface struct{}

func (consoleSurface) ShowStats(v render.StatsView) {
	fmt.Println("=== Summary ===")
	if v.Unavailable != "" {
		fmt.Printf("  %s\n\n", v.Unavailable)
		return
	}
	fmt.Printf("  Total bills:     %d\n", v.Total)
	fmt.Printf("  Pending:         %d\n", v.Pending)
	fmt.Printf("  Paid:            %d\n", v.Paid)
	fmt.Printf("  Overdue:         %d\n", v.Overdue)
	fmt.Printf("  Collection rate: %s\n\n", v.CollectionRate)
}

func (consoleSurface) ShowRecentActivity(v render.ActivityList) {
	fmt.Println("=== Recent Activity ===")
	if len(v.Items) == 0 {
		fmt.Printf("  %s\n\n", v.Placeholder)
		return
	}
	for _, item := range v.Items {
		fmt.Printf("  %s  %-12s %s %s\n", item.CreatedAt, item.Status.Label, item.CustomerPhone, item.Outcome)
	}
	fmt.Println()
}

func (consoleSurface) ShowOverdueBills(v render.OverdueList) {
	fmt.Println("=== Overdue Bills ===")
	if len(v.Items) == 0 {
		fmt.Printf("  %s\n\n", v.Placeholder)
		return
	}
	for _, item := range v.Items {
		fmt.Printf("  %-12s %-24s %12s  due %s\n", item.BillNumber, item.CustomerName, item.Amount, item.DueDate)
	}
	fmt.Println()
}

func (consoleSurface) ShowBillsTable(v render.BillTable) {}

func (consoleSurface) ShowCallLogs(v render.CallTable) {}

func (consoleSurface) ShowAnalytics(v render.AnalyticsView) {
	fmt.Println("=== Analytics ===")
	if v.Unavailable != "" {
		fmt.Printf("  %s\n\n", v.Unavailable)
		return
	}
	fmt.Printf("  Call success rate:  %s\n", v.CallSuccessRate)
	fmt.Printf("  Avg call duration:  %s\n", v.AvgCallDuration)
	fmt.Printf("  Payment conversion: %s\n", v.PaymentConversion)
	fmt.Printf("  Total collection:   %s\n\n", v.TotalCollection)
}

func (consoleSurface) ShowBillDetail(v render.BillDetail) {}

func (consoleSurface) ShowCallDetail(v render.CallDetail) {}

type consoleNotifier struct{}

func (consoleNotifier) Notify(kind port.ToastKind, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", kind, message)
}

// declineAll never approves an action; this tool only reads
type declineAll struct{}

func (declineAll) Confirm(ctx context.Context, message string) bool { return false }

func main() {
	baseURL := flag.String("url", "", "Backend base URL (or set API_BASE_URL env var)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	level := "error"
	if *verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(utils.LoggerConfig{Level: level, OutputPath: "stderr", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *baseURL == "" {
		*baseURL = os.Getenv("API_BASE_URL")
	}

	client := backend.NewClient(backend.Config{BaseURL: *baseURL, Timeout: *timeout}, logger)

	fmt.Println("=== Backend Check ===")
	fmt.Printf("  Base URL: %s\n", client.BaseURL())
	fmt.Printf("  Timeout:  %v\n\n", *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	health, err := client.Health(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Backend API is not responding: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ %s is %s (%v)\n\n", health.Service, health.Status, time.Since(start).Round(time.Millisecond))

	controller := dashboard.NewController(dashboard.Dependencies{
		API:       client,
		Surface:   consoleSurface{},
		Notifier:  consoleNotifier{},
		Confirmer: declineAll{},
		Renderer:  render.NewRenderer(time.Local),
		Logger:    utils.NewKVLogger(logger),
	}, dashboard.DefaultOptions())

	failed := false
	if _, err := controller.LoadStats(ctx); err != nil {
		failed = true
	}
	if err := controller.LoadRecentActivity(ctx); err != nil {
		failed = true
	}
	if err := controller.LoadOverdueBills(ctx); err != nil {
		failed = true
	}
	if _, err := controller.LoadAnalytics(ctx); err != nil {
		failed = true
	}

	if failed {
		logger.Error("Backend check finished with errors", zap.String("base_url", client.BaseURL()))
		fmt.Fprintln(os.Stderr, "❌ Backend check FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ Backend check PASSED")
}
