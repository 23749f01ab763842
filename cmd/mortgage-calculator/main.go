package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/comparison"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/internal/optimizer"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json, pdf")
	outputFileFlag := flag.String("output-file", "", "write output to this file instead of stdout")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.InitializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx := context.Background()
	results, err := comparison.NewRunner(logger, nil).Compare(ctx, *conf)
	if err != nil {
		logger.Fatal("failed to compute amortization schedules",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	report := output.Report{Results: results}

	if conf.Optimizer != nil {
		summary, err := optimizer.NewRunner(logger, time.Now()).Optimize(ctx, comparison.BaselineName, conf.Loan, *conf.Optimizer)
		if err != nil {
			logger.Fatal("failed to optimize payments",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		report.Optimization = &summary
	}

	if err := writeReport(report, outputFormat, outputFile); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}

// writeReport renders the report to stdout, or to path when one is set. PDF
// output always goes to a file.
func writeReport(report output.Report, format, path string) error {
	if format == constants.OutputFormatPDF {
		if path == "" {
			path = constants.DefaultPDFOutputFile
		}
		return output.PDFFormat(report, path)
	}

	if path == "" {
		switch format {
		case constants.OutputFormatCSV:
			output.CsvFormat(report)
		case constants.OutputFormatJSON:
			output.JSONFormat(report)
		default:
			output.PrettyFormat(report)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case constants.OutputFormatCSV:
		return output.WriteCSV(file, report)
	case constants.OutputFormatJSON:
		return output.WriteJSON(file, report)
	default:
		return output.WritePretty(file, report)
	}
}
