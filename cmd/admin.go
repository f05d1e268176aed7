package cmd

import (
	"fmt"
	"strings"
	"time"

	"vms/database"
	"vms/models"
	"vms/utils"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Maintenance tasks against the training database",
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a staff or admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		role = strings.ToUpper(role)
		if role != models.RoleAdmin && role != models.RoleStaff {
			return fmt.Errorf("role must be %s or %s", models.RoleAdmin, models.RoleStaff)
		}
		if len(password) < 6 {
			return fmt.Errorf("password must be at least 6 characters")
		}

		database.ConnectDb()

		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}
		user := models.User{
			Name:     name,
			Email:    utils.NormalizeEmail(email),
			Role:     role,
			Password: hash,
		}
		if err := database.Database.Db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

var expireCmd = &cobra.Command{
	Use:   "expire-training",
	Short: "Expire training completions older than the validity window now",
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDb()

		n, err := utils.ExpireTrainingCompletions(database.Database.Db, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Expired training for %d contractor(s)\n", n)
		return nil
	},
}

func init() {
	createUserCmd.Flags().String("name", "", "Display name")
	createUserCmd.Flags().String("email", "", "Login email")
	createUserCmd.Flags().String("password", "", "Login password")
	createUserCmd.Flags().String("role", models.RoleStaff, "ADMIN or STAFF")
	createUserCmd.MarkFlagRequired("email")
	createUserCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(createUserCmd)
	adminCmd.AddCommand(expireCmd)
}
