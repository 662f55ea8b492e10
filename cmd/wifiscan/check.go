package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hakim/wifiscan/internal/platform"
	"github.com/hakim/wifiscan/internal/tools"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for the operating system utilities the probes use",
	Long: `Verify that the external utilities used by the probes on this platform are
installed and on PATH. A missing utility does not stop a scan; the affected
probe reports "unknown" and contributes no points.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		platformName, _ := cmd.Flags().GetString("platform")
		if platformName == "" && cfg != nil {
			platformName = cfg.Platform
		}

		id := platform.Detect()
		if platformName != "" {
			id = platform.Parse(platformName)
		}
		profile := platform.Lookup(id)
		if cfg != nil {
			profile = profile.WithOverrides(cfg.Tools.Overrides())
		}

		results := tools.CheckTools(profile.Requirements())

		fmt.Printf("Platform: %s\n\n", profile.ID)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Tool\tStatus\tPath\tPurpose")
		fmt.Fprintln(w, "----\t------\t----\t-------")

		foundCount := 0
		for _, result := range results {
			status := "[-]"
			path := "-"

			if result.Found {
				status = "[+]"
				path = result.Path
				foundCount++
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				result.Tool.Name,
				status,
				path,
				result.Tool.Purpose)
		}

		w.Flush()

		if profile.Firewall == nil {
			fmt.Println()
			fmt.Println("No firewall utility is known for this platform; the firewall probe will report unknown.")
		}
		if profile.Wireless == nil {
			fmt.Println()
			fmt.Println("SSID lookup is only available on macOS; the SSID will show as Unknown.")
		}

		fmt.Println()
		fmt.Printf("Summary: %d/%d tools found\n", foundCount, len(results))

		return nil
	},
}

func init() {
	checkCmd.Flags().String("platform", "", "check another platform's utilities: windows, darwin, linux")
	rootCmd.AddCommand(checkCmd)
}
