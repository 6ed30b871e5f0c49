// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Available when the charm backend is configured.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/harperreed/agewell/internal/charm"
	"github.com/harperreed/agewell/internal/config"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync wellness data across devices",
	Long: `Sync wellness data across devices using Charm Cloud.

These commands need the charm backend ("backend": "charm" in the config
or AGEWELL_BACKEND=charm). Data is E2E encrypted with your SSH key
before upload and syncs automatically after each write.

COMMANDS:

  link        Link this device to your Charm account
  status      Show sync status and account info
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete all agewell data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr
		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		out := cmd.OutOrStdout()
		success(out, "Device linked to Charm")
		if err := client.Sync(); err != nil {
			warn(out, "Initial sync failed: %v", err)
		} else {
			success(out, "Initial sync complete")
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		id, err := client.ID()
		if err != nil {
			warn(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'agewell sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		if client.IsReadOnly() {
			warn(out, "Read-only: another agewell process holds the database")
		}

		habits, _ := svc.Habits()
		cycles, _ := svc.Cycles(0)
		success(out, "Connected to Charm")
		fmt.Fprintf(out, "  Habits: %d\n", len(habits))
		fmt.Fprintf(out, "  Cycles: %d\n", len(cycles))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !confirm(cmd, "This will DELETE all local agewell data and restore from cloud.\nContinue? [y/N]: ", "y") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}
		if err := client.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		success(out, "Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all agewell data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charmClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !confirm(cmd, "This will PERMANENTLY DELETE all agewell data on every linked device.\nType 'wipe' to confirm: ", "wipe") {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}
		n, err := client.Wipe()
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		success(out, "Data wiped successfully")
		fmt.Fprintf(out, "  Records deleted: %d\n", n)
		return nil
	},
}

// charmClient returns the open repository as a Charm client.
func charmClient() (*charm.Client, error) {
	client, ok := repo.(*charm.Client)
	if !ok {
		return nil, fmt.Errorf("sync needs the charm backend (current: %s); set \"backend\": %q in %s",
			cfg.GetBackend(), config.BackendCharm, config.GetConfigPath())
	}
	return client, nil
}

func confirm(cmd *cobra.Command, prompt, want string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	var answer string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
	return answer == want || (want == "y" && answer == "Y")
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
