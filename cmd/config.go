package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dt-pm-tools/testcase-pipeline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure JIRA and QMetry connection settings",
	Long:  `Interactively set up the JIRA URL, email, API token, and the QMetry API key, project id, and project key. Settings are saved to ~/.testcase-pipeline.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		url := promptString(reader, "JIRA URL", existing.URL, "https://your-org.atlassian.net")
		email := promptString(reader, "Email", existing.Email, "")

		// Token (masked input)
		fmt.Print("JIRA API Token (input hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // newline after hidden input
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			token = existing.Token
		}

		fmt.Print("QMetry API Key (input hidden): ")
		keyBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("reading QMetry API key: %w", err)
		}
		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey == "" {
			apiKey = existing.QMetryAPIKey
		}

		projectID := promptString(reader, "QMetry project id", existing.QMetryProjectID, "")
		projectKey := promptString(reader, "QMetry project key", existing.QMetryProjectKey, "")

		cfg := config.Config{
			URL:              url,
			Email:            email,
			Token:            token,
			QMetryAPIKey:     apiKey,
			QMetryProjectID:  projectID,
			QMetryProjectKey: projectKey,
			GenAIKey:         existing.GenAIKey,
			GenAIModel:       existing.GenAIModel,
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

func promptString(reader *bufio.Reader, label, current, hint string) string {
	switch {
	case current != "":
		fmt.Printf("%s [%s]: ", label, current)
	case hint != "":
		fmt.Printf("%s (e.g., %s): ", label, hint)
	default:
		fmt.Printf("%s: ", label)
	}
	value, _ := reader.ReadString('\n')
	value = strings.TrimSpace(value)
	if value == "" {
		return current
	}
	return value
}

func init() {
	rootCmd.AddCommand(configCmd)
}
