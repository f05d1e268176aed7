package cmd

import (
	"vms/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vms",
	Short: "Visitor management: contractor training service and kiosk",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Path to the kiosk state file (overrides KIOSK_STORE_PATH)")
	rootCmd.PersistentFlags().String("backend", "", "Training service base URL (overrides BACKEND_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(adminCmd)
}

// resolveStorePath returns the --store flag, falling back to config.
func resolveStorePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("store"); p != "" {
		return p
	}
	return config.AppConfig.KioskStorePath
}

func resolveBackendURL(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("backend"); u != "" {
		return u
	}
	return config.AppConfig.BackendURL
}
