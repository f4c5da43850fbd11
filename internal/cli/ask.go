package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campusdesk/advising-engine/config"
	"github.com/campusdesk/advising-engine/services"
)

var (
	askConfigPath string
	askFields     []string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run a single question through the advising pipeline",
	Long: `Run one student question through the full pipeline and print the
resulting response as JSON, including the decision trail. Caller metadata
can be supplied with repeated --field key=value flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig(askConfigPath)
		if err != nil {
			return err
		}

		metadata, err := parseFieldFlags(askFields)
		if err != nil {
			return err
		}

		adv, _, _, err := buildPipeline(cfg)
		if err != nil {
			return err
		}

		response, err := adv.ProcessQuery(services.Query{
			Text:     strings.Join(args, " "),
			Metadata: metadata,
		})
		if err != nil {
			return fmt.Errorf("processing query: %w", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(response)
	},
}

// parseFieldFlags turns repeated key=value flags into a metadata map.
func parseFieldFlags(fields []string) (map[string]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	metadata := make(map[string]string, len(fields))
	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --field %q, expected key=value", field)
		}
		metadata[key] = value
	}
	return metadata, nil
}

func init() {
	askCmd.Flags().StringVar(&askConfigPath, "config", ".", "Directory containing advising.yaml")
	askCmd.Flags().StringArrayVar(&askFields, "field", nil, "Caller metadata as key=value (repeatable)")
	rootCmd.AddCommand(askCmd)
}
