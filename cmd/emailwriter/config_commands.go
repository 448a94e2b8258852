package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/platform/gemini"
	"github.com/phrazzld/email-writer/internal/redact"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows := configRows(cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	})

	return cmd
}

// configRows lists the settings worth seeing. The endpoint is shown without
// its query string and the API key only as set or missing.
func configRows(cfg *config.Config) [][]string {
	delays := gemini.RetryPolicyFromConfig(cfg.LLM).Delays()
	schedule := make([]string, len(delays))
	for i, d := range delays {
		schedule[i] = d.String()
	}
	if len(schedule) == 0 {
		schedule = []string{"none"}
	}

	origins := "any"
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		origins = strings.Join(cfg.Server.CORSAllowedOrigins, ", ")
	}

	timeout := "off"
	if cfg.LLM.RequestTimeoutSeconds > 0 {
		timeout = strconv.Itoa(cfg.LLM.RequestTimeoutSeconds) + "s"
	}

	return [][]string{
		{"server.port", strconv.Itoa(cfg.Server.Port)},
		{"server.log_level", cfg.Server.LogLevel},
		{"server.cors_allowed_origins", origins},
		{"llm.gemini_api_url", redact.URL(cfg.LLM.GeminiAPIURL)},
		{"llm.gemini_api_key", setOrMissing(cfg.LLM.GeminiAPIKey)},
		{"llm.max_retries", strconv.Itoa(cfg.LLM.MaxRetries)},
		{"llm.retry_schedule", strings.Join(schedule, ", ")},
		{"llm.request_timeout", timeout},
	}
}

func setOrMissing(v string) string {
	if v == "" {
		return "missing"
	}
	return "set"
}
