package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dt-pm-tools/testcase-pipeline/internal/config"
	"github.com/dt-pm-tools/testcase-pipeline/internal/jira"
	"github.com/dt-pm-tools/testcase-pipeline/internal/pipeline"
	"github.com/dt-pm-tools/testcase-pipeline/internal/qmetry"
)

var publishDryRun bool

var publishCmd = &cobra.Command{
	Use:   "publish <ticket-key>",
	Short: "Synthesize test cases for a ticket and upload them to QMetry",
	Long: `Runs the full pipeline for a ticket: fetch, extract requirements,
synthesize test cases, then create a QMetry folder named after the
ticket and upload the test cases into it in chunks. Per-item failures
are reported but do not abort the remaining uploads.

Publishing the same ticket twice creates a second folder with the same
name; QMetry does not deduplicate folders.

Use --dry-run to print what would be uploaded without calling QMetry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPublishConfig()
		if err != nil {
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
		cases := pipeline.Synthesize(requirements)
		if len(cases) == 0 {
			return fmt.Errorf("no test cases could be generated from ticket %s", ticket.Key)
		}

		if publishDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: would publish %d test case(s) to folder %s\n", len(cases), ticket.Key)
			for _, tc := range cases {
				fmt.Printf("%s  %s\n", tc.ID, tc.Summary)
			}
			return nil
		}

		publisher := qmetry.NewPublisher(session, cfg)
		result, err := publisher.Publish(ctx, cases, ticket.Key)
		if err != nil {
			return fmt.Errorf("publishing to QMetry: %w", err)
		}

		if result.Success > 0 {
			fmt.Fprintf(os.Stderr, "%d test case(s) added to folder %s\n", result.Success, ticket.Key)
		}
		if result.Failed > 0 {
			fmt.Fprintf(os.Stderr, "%d test case(s) failed:\n", result.Failed)
			for _, item := range result.Errors {
				fmt.Fprintf(os.Stderr, "  #%d %s: status %d: %s\n",
					item.Index+1, item.Summary, item.Status, item.Body)
			}
		}
		if result.Success == 0 {
			return fmt.Errorf("all %d test case upload(s) failed", result.Failed)
		}
		return nil
	},
}

// loadPublishConfig loads config and checks the QMetry fields on top
// of the JIRA ones.
func loadPublishConfig() (config.Config, error) {
	if err := loadConfig(); err != nil {
		return appConfig, err
	}
	if err := appConfig.ValidatePublish(); err != nil {
		return appConfig, fmt.Errorf("invalid config: %w\nRun 'testpipe config' to set up credentials", err)
	}
	return appConfig, nil
}

func init() {
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "print test cases without uploading")
	rootCmd.AddCommand(publishCmd)
}
