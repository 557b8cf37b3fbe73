package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nissenemj/loan-simulate-harmony-sub000/internal/config"
	"github.com/nissenemj/loan-simulate-harmony-sub000/internal/server"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/constants"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/debts"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/output"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/repayment"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/scenarios"
	"github.com/nissenemj/loan-simulate-harmony-sub000/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	compareFlag := flag.Bool("compare", false, "also evaluate the configured what-if scenarios")
	serveFlag := flag.Bool("serve", false, "run the HTTP plan API instead of a one-shot plan")
	serverConfigLocation := flag.String("server-config", "", "path to server configuration file")
	listenAddr := flag.String("listen", "", "listen address override for -serve")
	flag.Parse()

	if *serveFlag {
		runServer(*serverConfigLocation, *listenAddr, *logLevel)
		return
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
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

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Display any configuration warnings before running the plan.
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Normalize the loans and cards into the unified debt list.
	debtList, err := conf.ToDebts()
	if err != nil {
		logger.Fatal("failed to normalize debts",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the repayment simulation.
	sim := repayment.NewSimulator(logger)
	plan, err := sim.Simulate(debtList, conf.Plan.MonthlyBudget, debts.Method(conf.Plan.Strategy))
	if err != nil {
		logger.Fatal("failed to compute repayment plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(plan)
	case constants.OutputFormatCSV:
		output.CsvFormat(plan)
	}

	if !*compareFlag || len(conf.Scenarios) == 0 {
		return
	}

	// Evaluate the configured what-if scenarios against the plan baseline.
	runner := scenarios.NewRunner(logger)
	comparison, err := runner.Compare(context.Background(), debtList, conf.ToScenarios(), config.BaselineScenarioID)
	if err != nil {
		logger.Fatal("failed to compare scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	fmt.Printf("\n")
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyComparison(comparison)
	case constants.OutputFormatCSV:
		output.CsvComparison(comparison)
	}
}

func runServer(configLocation, listenAddr, logLevel string) {
	serverConf, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}
	if listenAddr != "" {
		serverConf.Address = listenAddr
	}

	logger, err := initializeLogger(serverConf.Logging, logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, serverConf.UploadSizeBytes(), version)
	logger.Info("starting plan API server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server terminated",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
