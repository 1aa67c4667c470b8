// Command checkout submits a flower order described by a YAML manifest through the same cart
// store, validation rules and checkout flow the storefront uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"bloom/cmd"
	"bloom/internal/core/application/usecases/commands"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/checkout"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D94F8A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	successStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5BBF85")).
			Padding(0, 1)
)

func main() {
	manifestPath := flag.String("manifest", "", "path to the YAML order manifest")
	envFile := flag.String("env", ".env", "dotenv file with the checkout endpoints")
	dryRun := flag.Bool("dry-run", false, "evaluate the cart and print totals without submitting")
	verbose := flag.Bool("v", false, "log checkout transitions")
	flag.Parse()

	if strings.TrimSpace(*manifestPath) == "" {
		die("--manifest is required")
	}
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		die("load %s: %v", *envFile, err)
	}
	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		die("configuration: %v", err)
	}

	logOut := io.Discard
	if *verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	app, err := cmd.NewCompositionRoot(configs, nil, logger)
	if err != nil {
		die("%v", err)
	}
	manifest, err := LoadManifest(*manifestPath)
	if err != nil {
		die("%v", err)
	}

	store, err := app.CreateCartStore()
	if err != nil {
		die("%v", err)
	}
	rejections, err := manifest.Apply(store, app.ShippingResolver())
	if err != nil {
		die("%v", err)
	}
	for _, r := range rejections {
		for _, msg := range r.Messages {
			fmt.Println(errorStyle.Render(fmt.Sprintf("line %d: %s", r.Line, msg)))
		}
	}

	printSummary(store.State())
	verdict := app.ValidationEngine().Evaluate(store.State())
	if !verdict.CanCheckout() {
		for _, msg := range verdict.BlockingMessages {
			fmt.Println(errorStyle.Render("✗ " + msg))
		}
		os.Exit(2)
	}
	if *dryRun {
		fmt.Println(mutedStyle.Render("dry run: ready to submit"))
		return
	}

	handler, err := app.CreateSubmitCheckoutCommandHandler(printNavigator{})
	if err != nil {
		die("%v", err)
	}
	handler.Subscribe(printStatus)

	submit, err := commands.NewSubmitCheckoutCommand(store)
	if err != nil {
		die("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := handler.Handle(ctx, submit)
	if err != nil {
		die("%v", err)
	}
	fmt.Println(successStyle.Render(renderResult(result)))
}

func printSummary(c cart.Cart) {
	totals := cart.Summarize(c)
	fmt.Println(titleStyle.Render(fmt.Sprintf("%d item(s)", c.Len())))
	for i, line := range c.Lines() {
		where := "pickup " + line.PickupCity
		if line.IsDelivery() && line.Shipping != nil {
			where = fmt.Sprintf("delivery %s $%s", line.Shipping.Zone, line.Shipping.Cost.StringFixed(2))
		}
		fmt.Printf("  %d. %s x%d  $%s  %s  %d image(s)\n",
			i+1, line.Product.Name, line.Quantity, line.Subtotal().StringFixed(2), mutedStyle.Render(where), len(line.Images))
	}
	fmt.Printf("  subtotal $%s  IVA $%s  total $%s\n",
		totals.Subtotal.StringFixed(2), totals.IVA.StringFixed(2), totals.Total.StringFixed(2))
}

func printStatus(s checkout.Status) {
	switch s.State {
	case checkout.UploadingImages:
		fmt.Println(mutedStyle.Render("uploading image " + s.Progress()))
	case checkout.Failed:
		fmt.Println(errorStyle.Render(s.Message))
	default:
		fmt.Println(mutedStyle.Render(s.String()))
	}
}

func renderResult(r commands.SubmitCheckoutResult) string {
	lines := []string{
		titleStyle.Render("Order " + r.OrderID),
		fmt.Sprintf("images uploaded: %d", r.Images),
		"confirmation: " + r.Destination,
	}
	if r.CheckoutURL != "" {
		lines = append(lines, "payment: "+r.CheckoutURL)
	}
	return strings.Join(lines, "\n")
}

// printNavigator stands in for the browser redirect.
type printNavigator struct{}

func (printNavigator) Navigate(_ context.Context, destination string) error {
	fmt.Println(mutedStyle.Render("→ " + destination))
	return nil
}

func die(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf(format, args...)))
	os.Exit(1)
}
