package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"vms/config"
	"vms/database"
	"vms/routers"
	"vms/utils"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the training HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDb()

		scheduler, err := utils.InitializeTrainingScheduler()
		if err != nil {
			return err
		}
		defer scheduler.Stop()

		app := routers.NewApp()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-quit
			log.Println("Shutting down server...")
			if err := app.Shutdown(); err != nil {
				log.Printf("Server shutdown failed: %v", err)
			}
		}()

		log.Printf("Server is running on port %s", config.AppConfig.Port)
		return app.Listen(":" + config.AppConfig.Port)
	},
}
