package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	ownerFlag string
	rootCmd   = &cobra.Command{
		Use:   "assistantctl",
		Short: "CLI client for the meeting-assistant REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Assistant service base URL")
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "o", "", "Owner ID (required)")

	sendCmd := &cobra.Command{
		Use:   "send [text]",
		Short: "Send a natural-language message and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerFlag == "" {
				return fmt.Errorf("--owner required")
			}
			name, _ := cmd.Flags().GetString("name")
			return runSend(apiFlag, ownerFlag, name, args[0], os.Stdout)
		},
	}
	sendCmd.Flags().StringP("name", "n", "", "Sender display name")
	rootCmd.AddCommand(sendCmd)

	meetingsCmd := &cobra.Command{
		Use:   "meetings",
		Short: "Direct meeting operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerFlag == "" {
				return fmt.Errorf("--owner required")
			}
			query, _ := cmd.Flags().GetString("query")
			return runList(apiFlag, ownerFlag, query, os.Stdout)
		},
	}
	listCmd.Flags().StringP("query", "q", "", "Filter text (may contain a date phrase)")
	meetingsCmd.AddCommand(listCmd)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a meeting directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ownerFlag == "" {
				return fmt.Errorf("--owner required")
			}
			title, _ := cmd.Flags().GetString("title")
			start, _ := cmd.Flags().GetString("start")
			duration, _ := cmd.Flags().GetInt("duration")
			location, _ := cmd.Flags().GetString("location")
			if title == "" || start == "" {
				return fmt.Errorf("--title and --start required")
			}
			return runAdd(apiFlag, ownerFlag, title, start, duration, location, os.Stdout)
		},
	}
	addCmd.Flags().StringP("title", "t", "", "Meeting title (required)")
	addCmd.Flags().StringP("start", "s", "", "Start time, RFC 3339 (required)")
	addCmd.Flags().IntP("duration", "d", 30, "Duration in minutes")
	addCmd.Flags().StringP("location", "l", "", "Location")
	meetingsCmd.AddCommand(addCmd)

	rootCmd.AddCommand(meetingsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
