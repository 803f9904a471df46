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

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Collect chassis/module/SFP/PSU inventory for every device in the fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runCollection(platform.IntentInventory, collector.SecondaryConfig{})
		if err != nil {
			return err
		}

		var out []model.InventoryItem
		for _, r := range results {
			entry, err := app.registry.Resolve(r.Device.Platform)
			vendorTag := ""
			if err == nil {
				vendorTag = entry.VendorTag
			}
			out = append(out, normalize.Inventory(r.PrimaryRows, r.Device.Key(), vendorTag)...)
		}

		if app.jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
				return exitf(4, "encoding output: %w", err)
			}
		} else {
			printInventory(out)
		}

		finishRun()
		return nil
	},
}

func printInventory(items []model.InventoryItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "DEVICE\tSLOT\tKIND\tPART ID\tSERIAL")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.Device, it.Slot, it.Kind, it.PartID, it.Serial)
	}
}
