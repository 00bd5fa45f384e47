package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finsight/pnl-csv/cmd/kpis"
	"finsight/pnl-csv/cmd/merge"
	"finsight/pnl-csv/cmd/monthly"
	"finsight/pnl-csv/cmd/root"
	"finsight/pnl-csv/cmd/statement"
	"finsight/pnl-csv/cmd/top"
	"finsight/pnl-csv/internal/logging"

	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables silently first, so the log level is known
	// before the first log line is emitted.
	loadEnvSilently()
	configureInitialLogging()

	root.Init()
	monthly.Init()
	statement.Init()
	top.Init()
	merge.Init()

	root.Cmd.AddCommand(kpis.Cmd)
	root.Cmd.AddCommand(monthly.Cmd)
	root.Cmd.AddCommand(statement.Cmd)
	root.Cmd.AddCommand(top.Cmd)
	root.Cmd.AddCommand(merge.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureInitialLogging installs a default logger from the environment.
// The full configuration hierarchy replaces it once the root command runs.
func configureInitialLogging() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))
	logging.SetDefaultLogger(logging.NewLogrusAdapter(level, format))
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
