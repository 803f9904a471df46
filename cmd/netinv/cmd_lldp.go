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

var lldpCmd = &cobra.Command{
	Use:   "lldp",
	Short: "Collect LLDP/CDP neighbor adjacencies for every device in the fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runCollection(platform.IntentLLDP, collector.SecondaryConfig{})
		if err != nil {
			return err
		}

		var out []model.LLDPNeighbor
		for _, r := range results {
			out = append(out, normalize.LLDP(r.PrimaryRows, r.Device.Key())...)
		}

		if app.jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
				return exitf(4, "encoding output: %w", err)
			}
		} else {
			printLLDP(out)
		}

		finishRun()
		return nil
	},
}

func printLLDP(neighbors []model.LLDPNeighbor) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "LOCAL DEVICE\tLOCAL IF\tREMOTE\tREMOTE IF\tREMOTE PLATFORM")
	for _, n := range neighbors {
		remote, _ := n.RemoteIdentity()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.LocalDevice, n.LocalInterface, remote, n.RemoteInterface, n.RemotePlatform)
	}
}
