/*
main.go - rentcalc command-line tool

PURPOSE:
  Runs the rental rules from the shell for back-office staff and scripts:
  checking a utility split, a contract's status, a penalty, or the words to
  put on a receipt. Each subcommand validates its raw flags into engine
  values, calls the calculator and prints the result to stdout.

STARTUP SEQUENCE:
  1. Parse global flags
  2. Load YAML config (-config or $RENTCALC_CONFIG)
  3. Build zap logger and prometheus registry
  4. Run the subcommand
  5. Write metrics textfile when configured

GLOBAL FLAGS:
  -config            YAML config path
  -log-level         Overrides logging.level
  -metrics-textfile  Overrides metrics.textfile (node_exporter collector)

SUBCOMMANDS:
  allocate     -previous -current -shared-total -bill
  tariff       -previous -current -price
  status       -terms FILE [-today YYYY-MM-DD]
  penalty      -terms FILE (-days N | -due DATE -paid DATE)
  terminate    -terms FILE
  compound     -amount -days [-rate]
  schedule     -terms FILE [-tenant NAME] [-address ADDR] [-json]
  delinquency  -bills FILE -from DATE -to DATE [-as-of DATE] [-rate]
  spell        AMOUNT
  receipt      -tenant -amount -reference

EXAMPLES:
  rentcalc allocate -previous 1200 -current 1350 -shared-total 600 -bill 480
  rentcalc spell 1234.10
  rentcalc -log-level debug status -terms contrato.json -today 2025-06-01

SEE ALSO:
  - calculator/calculator.go: Operations behind each subcommand
  - config/config.go: Config file format
*/
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/warp/rent-engine/allocation"
	"github.com/warp/rent-engine/calculator"
	"github.com/warp/rent-engine/config"
	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/lease"
	"github.com/warp/rent-engine/observability/logger"
	"github.com/warp/rent-engine/observability/metrics"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app is what every subcommand needs.
type app struct {
	calc   *calculator.Calculator
	cfg    config.Config
	log    *zap.Logger
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("rentcalc", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "YAML config path (default $"+config.EnvPath+")")
	logLevel := global.String("log-level", "", "Log level override")
	textfile := global.String("metrics-textfile", "", "Write metrics to this node_exporter textfile")
	global.Usage = func() { usage(global) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		usage(global)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *textfile != "" {
		cfg.Metrics.Textfile = *textfile
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to build logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	defaults, err := cfg.TermsDefaults()
	if err != nil {
		log.Error("invalid term defaults", zap.Error(err))
		return 1
	}

	reg := prometheus.NewRegistry()
	a := &app{
		calc: calculator.New(
			calculator.WithLogger(log),
			calculator.WithMetrics(metrics.New(reg)),
			calculator.WithTermsDefaults(defaults),
		),
		cfg:    cfg,
		log:    log,
		stdout: stdout,
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	err = a.dispatch(cmd, rest, stderr)

	if cfg.Metrics.Textfile != "" {
		if werr := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); werr != nil {
			log.Error("failed to write metrics textfile", zap.String("path", cfg.Metrics.Textfile), zap.Error(werr))
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		log.Debug("command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintf(stderr, "rentcalc %s: %v\n", cmd, err)
		return 1
	}
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: rentcalc [flags] <allocate|tariff|status|penalty|terminate|compound|schedule|delinquency|spell|receipt> [args]")
	fs.PrintDefaults()
}

func (a *app) dispatch(cmd string, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd {
	case "allocate":
		return a.allocate(fs, args)
	case "tariff":
		return a.tariff(fs, args)
	case "status":
		return a.status(fs, args)
	case "penalty":
		return a.penalty(fs, args)
	case "terminate":
		return a.terminate(fs, args)
	case "compound":
		return a.compound(fs, args)
	case "schedule":
		return a.schedule(fs, args)
	case "delinquency":
		return a.delinquency(fs, args)
	case "spell":
		return a.spell(args)
	case "receipt":
		return a.receipt(fs, args)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		return errUsage
	}
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func (a *app) allocate(fs *flag.FlagSet, args []string) error {
	previous := fs.String("previous", "", "Previous sub-meter reading (kWh)")
	current := fs.String("current", "", "Current sub-meter reading (kWh)")
	shared := fs.String("shared-total", "", "Consumption of the shared meter (kWh)")
	bill := fs.String("bill", "", "Total shared invoice (R$)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var r allocation.Reading
	var err error
	if r.Previous, err = engine.ParseKWh(*previous); err != nil {
		return err
	}
	if r.Current, err = engine.ParseKWh(*current); err != nil {
		return err
	}
	if r.SharedTotal, err = engine.ParseKWh(*shared); err != nil {
		return err
	}
	if r.TotalBill, err = engine.ParseMoney(*bill); err != nil {
		return err
	}

	share := a.calc.Allocate(r)
	d := share.Display()
	a.printf("consumo: %s kWh\npercentual: %s%%\nvalor: %s\n", d.Consumption, d.Percent, d.AmountDue)
	if share.Implausible() {
		a.printf("atenção: leitura implausível\n")
	}
	return nil
}

func (a *app) tariff(fs *flag.FlagSet, args []string) error {
	previous := fs.String("previous", "", "Previous meter reading (kWh)")
	current := fs.String("current", "", "Current meter reading (kWh)")
	price := fs.String("price", "", "Price per kWh (R$)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	prev, err := engine.ParseKWh(*previous)
	if err != nil {
		return err
	}
	cur, err := engine.ParseKWh(*current)
	if err != nil {
		return err
	}
	perKWh, err := engine.ParseMoney(*price)
	if err != nil {
		return err
	}

	charge := a.calc.AtTariff(prev, cur, perKWh)
	d := charge.Display()
	a.printf("consumo: %s kWh\nvalor: %s\n", d.Consumption, d.AmountDue)
	if charge.Implausible() {
		a.printf("atenção: leitura implausível\n")
	}
	return nil
}

func (a *app) status(fs *flag.FlagSet, args []string) error {
	termsPath := fs.String("terms", "", "Contract terms JSON file")
	today := fs.String("today", "", "Reference date (default: today)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := a.loadTerms(*termsPath)
	if err != nil {
		return err
	}
	day, err := dateOrToday(*today)
	if err != nil {
		return err
	}

	a.printf("%s\n", a.calc.Status(t, day).Label())
	return nil
}

func (a *app) penalty(fs *flag.FlagSet, args []string) error {
	termsPath := fs.String("terms", "", "Contract terms JSON file")
	days := fs.Int("days", -1, "Days late")
	due := fs.String("due", "", "Due date")
	paid := fs.String("paid", "", "Payment date")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := a.loadTerms(*termsPath)
	if err != nil {
		return err
	}

	var amount engine.Money
	switch {
	case *days >= 0:
		amount = a.calc.LatePaymentPenalty(t, *days)
	case *due != "" && *paid != "":
		dueDate, err := engine.ParseDate(*due)
		if err != nil {
			return err
		}
		paidOn, err := engine.ParseDate(*paid)
		if err != nil {
			return err
		}
		amount = a.calc.LatePaymentPenaltyOn(t, dueDate, paidOn)
	default:
		return fmt.Errorf("%w: give -days or both -due and -paid", errUsage)
	}

	a.printf("%s\n", a.calc.AmountClause(amount))
	return nil
}

func (a *app) terminate(fs *flag.FlagSet, args []string) error {
	termsPath := fs.String("terms", "", "Contract terms JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := a.loadTerms(*termsPath)
	if err != nil {
		return err
	}
	a.printf("%s\n", a.calc.AmountClause(a.calc.EarlyTerminationPenalty(t)))
	return nil
}

func (a *app) compound(fs *flag.FlagSet, args []string) error {
	amountStr := fs.String("amount", "", "Overdue amount (R$)")
	rateStr := fs.String("rate", a.cfg.Terms.DailyInterestPercent, "Daily interest (%)")
	days := fs.Int("days", 0, "Days late")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amount, err := engine.ParseMoney(*amountStr)
	if err != nil {
		return err
	}
	rate, err := engine.ParsePercent(*rateStr)
	if err != nil {
		return err
	}

	interest := a.calc.CompoundLateInterest(amount, rate, *days)
	a.printf("juros: %s\ntotal: %s\n", calculator.FormatBRL(interest), calculator.FormatBRL(amount.Add(interest)))
	return nil
}

// billJSON is one entry of the -bills file.
type billJSON struct {
	Reference string `json:"reference"`
	Tenant    string `json:"tenant"`
	Address   string `json:"address"`
	DueDate   string `json:"due_date"`
	Amount    string `json:"amount"`
	Paid      bool   `json:"paid"`
}

// schedule prints the contract's bills; with -json the output is a valid
// -bills file for delinquency.
func (a *app) schedule(fs *flag.FlagSet, args []string) error {
	termsPath := fs.String("terms", "", "Contract terms JSON file")
	tenant := fs.String("tenant", "", "Tenant name")
	address := fs.String("address", "", "Property address")
	asJSON := fs.Bool("json", false, "Print bills as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := a.loadTerms(*termsPath)
	if err != nil {
		return err
	}

	bills := a.calc.RentBills(t, *tenant, *address)
	if *asJSON {
		out := make([]billJSON, 0, len(bills))
		for _, b := range bills {
			out = append(out, billJSON{
				Reference: b.Reference,
				Tenant:    b.Tenant,
				Address:   b.Address,
				DueDate:   b.DueDate.String(),
				Amount:    b.Amount.String(),
			})
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, b := range bills {
		a.printf("%s\t%s\t%s\n", b.DueDate, b.Reference, calculator.FormatBRL(b.Amount))
	}
	return nil
}

func (a *app) delinquency(fs *flag.FlagSet, args []string) error {
	billsPath := fs.String("bills", "", "Bills JSON file")
	from := fs.String("from", "", "Window start")
	to := fs.String("to", "", "Window end")
	asOf := fs.String("as-of", "", "Reference date (default: today)")
	rateStr := fs.String("rate", a.cfg.Terms.DailyInterestPercent, "Daily interest (%)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bills, err := loadBills(*billsPath)
	if err != nil {
		return err
	}
	start, err := engine.ParseDate(*from)
	if err != nil {
		return err
	}
	end, err := engine.ParseDate(*to)
	if err != nil {
		return err
	}
	day, err := dateOrToday(*asOf)
	if err != nil {
		return err
	}
	rate, err := engine.ParsePercent(*rateStr)
	if err != nil {
		return err
	}

	report := a.calc.Delinquency(bills, engine.Window(start, end), day, rate)
	for _, line := range report.Lines {
		a.printf("%s\t%s\t%s\t%d dias\t%s\n",
			line.Bill.DueDate, line.Bill.Tenant, line.Bill.Reference, line.DaysLate, calculator.FormatBRL(line.Total))
	}
	a.printf("principal: %s\njuros: %s\ntotal: %s\n",
		calculator.FormatBRL(report.Principal), calculator.FormatBRL(report.Interest), calculator.FormatBRL(report.Total))
	return nil
}

func (a *app) spell(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: spell AMOUNT", errUsage)
	}
	amount, err := engine.ParseMoney(args[0])
	if err != nil {
		return err
	}
	a.printf("%s\n", a.calc.Spell(amount))
	return nil
}

func (a *app) receipt(fs *flag.FlagSet, args []string) error {
	tenant := fs.String("tenant", "", "Tenant name")
	amountStr := fs.String("amount", "", "Amount received (R$)")
	reference := fs.String("reference", "", "What the payment refers to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*tenant) == "" || strings.TrimSpace(*reference) == "" {
		return fmt.Errorf("%w: -tenant and -reference are required", errUsage)
	}

	amount, err := engine.ParseMoney(*amountStr)
	if err != nil {
		return err
	}
	a.printf("%s\n", a.calc.ReceiptLine(*tenant, amount, *reference))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

func (a *app) loadTerms(path string) (lease.Terms, error) {
	if path == "" {
		return lease.Terms{}, fmt.Errorf("%w: -terms is required", errUsage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return lease.Terms{}, err
	}
	t, err := a.calc.ParseTerms(string(data))
	if err != nil {
		return lease.Terms{}, fmt.Errorf("%s: %w", path, err)
	}
	return *t, nil
}

func loadBills(path string) ([]lease.Bill, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: -bills is required", errUsage)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []billJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse bills JSON: %w", err)
	}

	bills := make([]lease.Bill, 0, len(raw))
	for i, b := range raw {
		due, err := engine.ParseDate(b.DueDate)
		if err != nil {
			return nil, fmt.Errorf("bill %d: %w", i, err)
		}
		amount, err := engine.ParseMoney(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("bill %d: %w", i, err)
		}
		bills = append(bills, lease.Bill{
			Reference: b.Reference,
			Tenant:    b.Tenant,
			Address:   b.Address,
			DueDate:   due,
			Amount:    amount,
			Paid:      b.Paid,
		})
	}
	return bills, nil
}

func dateOrToday(s string) (engine.Date, error) {
	if s == "" {
		return engine.Today(), nil
	}
	return engine.ParseDate(s)
}
