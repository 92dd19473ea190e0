package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/config"
	"github.com/Eras256/FlowFi/internal/domain"
	"github.com/Eras256/FlowFi/internal/logger"
	"github.com/Eras256/FlowFi/internal/records"
)

func main() {
	app := &cli.App{
		Name:  "flowfi",
		Usage: "Score, mint and fund invoices on Casper",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to configuration file"},
			&cli.StringFlag{Name: "env", Value: "config/", Usage: "Path to environment files"},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "Path to the PEM secret key of the signing account"},
			&cli.StringFlag{Name: "api", Usage: "Score documents through a FlowFi API server instead of calling Gemini directly"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"D"}, Usage: "Debug logging"},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			if a, ok := c.App.Metadata[appKey].(*app); ok {
				a.close()
			}
			logger.Flush(2 * time.Second)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Score an invoice document",
				ArgsUsage: "<file>",
				Action:    analyzeAction,
			},
			{
				Name:      "mint",
				Usage:     "Score, upload and mint an invoice document",
				ArgsUsage: "<file>",
				Action:    mintAction,
			},
			{
				Name:      "fund",
				Usage:     "Fund a listed invoice from the signing account",
				ArgsUsage: "<invoice-id>",
				Action:    fundAction,
			},
			{
				Name:  "list",
				Usage: "List marketplace invoices",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Value: records.FilterAll, Usage: "all, minted, funded or available"},
					&cli.StringFlag{Name: "search", Usage: "Match vendor name or invoice id"},
					&cli.StringFlag{Name: "sort", Value: records.SortAmount, Usage: "amount, yield or term"},
				},
				Action: listAction,
			},
			{
				Name:      "status",
				Usage:     "Show the execution status of a deploy",
				ArgsUsage: "<deploy-hash>",
				Action:    statusAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const appKey = "flowfi"

func setup(c *cli.Context) error {
	config.ChdirRepoRoot()
	cfg, err := config.LoadCLIConfig(c.String("config"), c.String("env"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("key") {
		cfg.Wallet.KeyPath = c.String("key")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	if err := logger.Initialize(logger.Config{
		Service:   "flowfi-cli",
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a, err := newApp(c.Context, cfg, c.String("api"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[appKey] = a
	return nil
}

func appFrom(c *cli.Context) *app {
	return c.App.Metadata[appKey].(*app)
}

func readDocument(c *cli.Context) (*domain.Document, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("a document path is required", 2)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &domain.Document{
		Name:        path,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func analyzeAction(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	// scored through the minting workflow so an unavailable analyzer yields the simulated assessment
	minter := appFrom(c).minter()
	if err := minter.Drop(c.Context, doc); err != nil {
		return err
	}
	return printJSON(minter.Snapshot().Assessment)
}

func mintAction(c *cli.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}
	a := appFrom(c)
	if err := a.wallet.Connect(c.Context); err != nil {
		return err
	}

	minter := a.minter()
	if err := minter.Drop(c.Context, doc); err != nil {
		return err
	}
	snap := minter.Snapshot()
	logger.InfoCtx(c.Context, "Document scored",
		zap.String("grade", string(snap.Assessment.Grade)),
		zap.Float64("valuation", snap.Assessment.Valuation),
	)

	if err := minter.Mint(c.Context); err != nil {
		_ = printJSON(minter.Snapshot())
		return err
	}
	return printJSON(minter.Snapshot())
}

func fundAction(c *cli.Context) error {
	invoiceID := c.Args().First()
	if invoiceID == "" {
		return cli.Exit("an invoice id is required", 2)
	}
	a := appFrom(c)
	if err := a.wallet.Connect(c.Context); err != nil {
		return err
	}

	funder, err := a.funder()
	if err != nil {
		return err
	}
	attempt, err := funder.Fund(c.Context, invoiceID)
	if attempt != nil {
		_ = printJSON(attempt)
	}
	return err
}

func listAction(c *cli.Context) error {
	a := appFrom(c)
	invoices, err := a.records.List(c.Context)
	if err != nil {
		return err
	}
	listed := records.Apply(invoices, records.Query{
		Filter: c.String("filter"),
		Search: c.String("search"),
		SortBy: c.String("sort"),
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Invoice", "Vendor", "Amount", "Grade", "Yield", "Term", "Status"})
	for _, inv := range listed {
		table.Append([]string{
			inv.ID,
			inv.VendorName,
			strconv.FormatFloat(inv.Amount, 'f', 2, 64),
			string(inv.Grade),
			strconv.FormatFloat(inv.YieldRate, 'f', 1, 64) + "%",
			strconv.Itoa(inv.TermDays) + "d",
			string(inv.FundingStatus),
		})
	}
	table.Render()

	stats := records.Stats(invoices)
	fmt.Printf("%d of %d invoices, %d funded, volume %.2f, average yield %.1f%%\n",
		len(listed), stats.TotalInvoices, stats.FundedCount, stats.TotalVolume, stats.AvgYield)
	return nil
}

func statusAction(c *cli.Context) error {
	deployHash := c.Args().First()
	if deployHash == "" {
		return cli.Exit("a deploy hash is required", 2)
	}
	info, err := appFrom(c).rpc.GetDeploy(c.Context, deployHash)
	if err != nil {
		return err
	}
	return printJSON(info)
}
