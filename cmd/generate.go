package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dt-pm-tools/testcase-pipeline/internal/jira"
	"github.com/dt-pm-tools/testcase-pipeline/internal/llm"
	"github.com/dt-pm-tools/testcase-pipeline/internal/pipeline"
	"github.com/dt-pm-tools/testcase-pipeline/internal/report"
)

var (
	generateCSV    string
	generateOut    string
	generateUseLLM bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <ticket-key>",
	Short: "Fetch a JIRA ticket and synthesize test cases",
	Long: `Fetches a JIRA ticket by key, extracts requirements from its
description, and synthesizes structured test cases. Writes a summary to
stdout; use --csv or --out to also write CSV or markdown renderings.

With --llm the raw requirements are additionally sent to the configured
completion model; if the model is unavailable or fails, the template
synthesizer output is used alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		ctx := cmd.Context()

		session, err := jira.Open(ctx, appConfig, logger)
		if err != nil {
			return fmt.Errorf("opening JIRA session: %w", err)
		}

		client := jira.NewClient(session)
		ticket, err := client.FetchTicket(ctx, args[0])
		if err != nil {
			return fmt.Errorf("fetching ticket %s: %w", strings.TrimSpace(args[0]), err)
		}

		requirements := pipeline.ExtractRequirements(ticket.Description)
		if len(requirements) == 0 {
			return fmt.Errorf("ticket %s has no description to derive requirements from", ticket.Key)
		}

		cases := pipeline.Synthesize(requirements)
		if len(cases) == 0 {
			return fmt.Errorf("no test cases could be generated from ticket %s", ticket.Key)
		}

		fmt.Fprintf(os.Stderr, "%s: %s\n", ticket.Key, ticket.Summary)
		fmt.Fprintf(os.Stderr, "%d requirement(s), %d test case(s)\n", len(requirements), len(cases))
		for _, tc := range cases {
			fmt.Printf("%s  [%s/%s]  %s\n", tc.ID, tc.Type, tc.Priority, tc.Summary)
		}

		if generateUseLLM {
			printLLMSuggestions(cmd, requirements)
		}

		if generateCSV != "" {
			if err := writeReport(generateCSV, func(f *os.File) error {
				return report.WriteCSV(f, cases)
			}); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "CSV written to %s\n", generateCSV)
		}

		if generateOut != "" {
			if err := writeReport(generateOut, func(f *os.File) error {
				return report.WriteMarkdown(f, cases, ticket.Key)
			}); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Markdown written to %s\n", generateOut)
		}

		return nil
	},
}

// printLLMSuggestions asks the completion model for additional test
// case ideas. Any failure degrades to the template output already
// printed; it never fails the command.
func printLLMSuggestions(cmd *cobra.Command, requirements []string) {
	ctx := cmd.Context()

	completer, err := llm.NewGenAIClient(ctx, appConfig.GenAIKey, appConfig.GenAIModel)
	if err != nil {
		logger.Warn("LLM unavailable, using template synthesis only", zap.Error(err))
		return
	}

	reply, err := completer.Complete(ctx, llm.BuildPrompt(strings.Join(requirements, "\n")))
	if err != nil {
		logger.Warn("LLM completion failed, using template synthesis only", zap.Error(err))
		return
	}

	suggestions := llm.ParseCases(reply)
	if len(suggestions) == 0 {
		return
	}
	fmt.Printf("\nModel-suggested test cases:\n")
	for _, s := range suggestions {
		fmt.Printf("\n%s\n", s)
	}
}

func writeReport(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	generateCmd.Flags().StringVar(&generateCSV, "csv", "", "write test cases to <path> as CSV")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "write test cases to <path> as markdown")
	generateCmd.Flags().BoolVar(&generateUseLLM, "llm", false, "also ask the completion model for test case ideas")
	rootCmd.AddCommand(generateCmd)
}
