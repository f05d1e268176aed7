package cmd

import (
	"fmt"
	"time"

	"vms/client"
	"vms/config"
	"vms/kiosk"

	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check a contractor in on this kiosk",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		company, _ := cmd.Flags().GetString("company")
		host, _ := cmd.Flags().GetString("host")

		store, err := kiosk.OpenStore(resolveStorePath(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		c := newClient(cmd)
		res, err := c.CheckIn(cmd.Context(), name, email, company, host)
		if err != nil {
			return fmt.Errorf("check-in failed: %w", err)
		}
		if err := store.SaveCheckIn(cmd.Context(), res.ContractorID, res.Token); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Checked in %s (%s). Status: %s\n", name, res.ContractorID, res.Status)
		if res.TrainingExpires != nil && res.TrainingExpires.After(time.Now()) {
			fmt.Fprintf(cmd.OutOrStdout(), "Training valid until %s\n", res.TrainingExpires.Format("2006-01-02"))
		}
		return nil
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run the training flow for the checked-in contractor",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := kiosk.OpenStore(resolveStorePath(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		token, err := store.Token(cmd.Context())
		if err != nil {
			return err
		}
		c := newClient(cmd)
		c.SetToken(token)

		redirect, err := kiosk.Run(cmd.Context(), store, c, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if redirect != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "-> %s\n", redirect)
		}
		return nil
	},
}

func newClient(cmd *cobra.Command) *client.Client {
	timeout := time.Duration(config.AppConfig.BackendTimeout) * time.Second
	return client.New(resolveBackendURL(cmd), timeout)
}

func init() {
	checkinCmd.Flags().String("name", "", "Contractor full name")
	checkinCmd.Flags().String("email", "", "Contractor email")
	checkinCmd.Flags().String("company", "", "Contractor company")
	checkinCmd.Flags().String("host", "", "Name of the employee hosting the visit")
	for _, f := range []string{"name", "email", "company", "host"} {
		checkinCmd.MarkFlagRequired(f)
	}
}
