// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trfproj/trf-mcp/internal/agent"
	"github.com/trfproj/trf-mcp/internal/config"
	"github.com/trfproj/trf-mcp/internal/llm"
	"github.com/trfproj/trf-mcp/internal/query"
	"github.com/trfproj/trf-mcp/internal/report"
	"github.com/trfproj/trf-mcp/internal/tool"
)

const version = "0.1.0"

var (
	configPath string
	dataDir    string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "trf-mcp",
	Short: "Natural-language query service over TRF test reports",
	Long: `trf-mcp answers natural-language queries over a directory of TRF test-report
documents. A language model extracts the query parameters (feature, time
period, output format); the deterministic pipeline parses, filters and
renders the matching records.

Run 'trf-mcp serve' to expose the pipeline as MCP tools over stdio, or
'trf-mcp query <text>' for a one-shot query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Stdout carries the MCP protocol; logs must not interleave with it.
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query pipeline as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildAgent()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := mcp.NewServer(&mcp.Implementation{Name: "trf-mcp", Version: version}, nil)
		mcp.AddTool(server, tool.MetadataQueryTestReports, tool.NewQueryTestReports(a))
		mcp.AddTool(server, tool.MetadataParseReportDocument, tool.ParseReportDocument)

		logger.Info("serving MCP over stdio", zap.String("version", version))
		return server.Run(ctx, &mcp.StdioTransport{})
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Run one natural-language query and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildAgent()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := a.Run(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		// Empty-result conditions come back as text even for table format.
		if result.Format == query.FormatTable && result.Text == "" {
			out, err := json.MarshalIndent(result.Records, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		return nil
	},
}

// buildAgent assembles the store, model client and agent from configuration
// and flags.
func buildAgent() (*agent.Agent, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	client, err := llm.NewGroq(llm.GroqOptions{
		BaseURL:   cfg.BaseURL,
		Model:     cfg.Model,
		APIKeyEnv: cfg.APIKeyEnv,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	// Extraction wants deterministic output; summaries keep the API default.
	store := report.NewStore(cfg.DataDir, logger)
	return agent.New(store, client.WithTemperature(0), client, logger, cfg.PromptMaxLength), nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "override the report data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
