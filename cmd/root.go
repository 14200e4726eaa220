package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prd",
	Short: "project requirement document generator",
	Example: `prd serve
prd context set -t <token>
prd create -t <title> -d <description> -s React,Node.js -p "Inbox:Lists conversations"
prd get -i <prd-id>
prd list --status DRAFT
prd regenerate -i <prd-id>
prd versions -i <prd-id>
prd comment add -i <prd-id> -c <content>`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
