package cli

import (
	"encoding/json"
	"os"

	"github.com/dkhalizov/site-pipeline/internal/infrastructure/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved variant configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(b)
		return err
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON")

	rootCmd.AddCommand(showCmd)
}
