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

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "Collect interface state for every device in the fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := collector.SecondaryConfig{Enabled: map[platform.Intent]bool{
			platform.IntentLAG:        true,
			platform.IntentSwitchport: true,
			platform.IntentMediaType:  true,
		}}
		results, err := runCollection(platform.IntentInterfaces, sc)
		if err != nil {
			return err
		}

		var out []model.Interface
		for _, r := range results {
			ifaces := normalize.Interfaces(r.PrimaryRows, r.Device.Key())
			ifaces = normalize.EnrichWithLAG(ifaces, r.SecondaryRows[platform.IntentLAG])
			ifaces = normalize.EnrichWithSwitchport(ifaces, r.SecondaryRows[platform.IntentSwitchport])
			ifaces = normalize.EnrichWithMediaType(ifaces, r.SecondaryRows[platform.IntentMediaType])
			out = append(out, ifaces...)
		}

		if app.jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
				return exitf(4, "encoding output: %w", err)
			}
		} else {
			printInterfaces(out)
		}

		finishRun()
		return nil
	},
}

func printInterfaces(interfaces []model.Interface) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "DEVICE\tNAME\tENABLED\tMODE\tSPEED\tLAG PARENT")
	for _, i := range interfaces {
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%d\t%s\n", i.Device, i.Name, i.Enabled, i.Mode, i.SpeedBPS, i.LAGParent)
	}
}
