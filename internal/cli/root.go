package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rolodex",
	Short: "Personal relationship manager",
	Long:  "Rolodex keeps a contact database and tells you who to reach out to. Single Go binary, local SQLite.",
}

func Execute() error {
	// Best-effort .env load; absence is fine.
	godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(birthdaysCmd)
	rootCmd.AddCommand(snoozeCmd)
	rootCmd.AddCommand(dismissCmd)
	rootCmd.AddCommand(searchCmd)
}
