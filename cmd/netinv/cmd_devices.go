package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/normalize"
	"github.com/netfleet/netinv/pkg/platform"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Collect hostname and vendor identity for every device in the fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runCollection(platform.IntentDevices, collector.SecondaryConfig{})
		if err != nil {
			return err
		}

		var out []deviceWithVendor
		for _, r := range results {
			dev := normalize.Devices(r.PrimaryRows, r.Device)
			vendor := ""
			if entry, err := app.registry.Resolve(dev.Platform); err == nil {
				vendor = entry.VendorTag
			}
			out = append(out, deviceWithVendor{Device: dev, Vendor: vendor})
		}

		if app.jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
				return exitf(4, "encoding output: %w", err)
			}
		} else {
			printDevices(out)
		}

		finishRun()
		return nil
	},
}

// deviceWithVendor pairs a collected Device with its registry-resolved
// vendor tag for display, since DeviceType is a distinct NetBox
// device-type hint, not the vendor (spec.md §9 Open Questions).
type deviceWithVendor struct {
	model.Device
	Vendor string
}

func printDevices(devices []deviceWithVendor) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "HOST\tNAME\tPLATFORM\tVENDOR\tSITE\tROLE")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Host, d.Name, d.Platform, d.Vendor, d.Site, d.Role)
	}
}
