package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valeriy-chepelev/costsheet/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "costsheet",
	Short:         "Allocate tracker costs to attendance days and build project time sheets",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultConfigPath(), "path to the TOML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "log at INFO level instead of WARN")

	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(costsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command and prints a failure in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), Error("Execution error: "+err.Error()))
	}
	return err
}

// globalFlags reads the persistent flags shared by every command.
func globalFlags(cmd *cobra.Command) (configPath string, debug bool) {
	configPath, _ = cmd.Flags().GetString("config")
	debug, _ = cmd.Flags().GetBool("debug")
	return configPath, debug
}
