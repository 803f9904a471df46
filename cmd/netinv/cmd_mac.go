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

var macExcludeTrunk bool

var macCmd = &cobra.Command{
	Use:   "mac",
	Short: "Collect the MAC address table for every device in the fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runCollection(platform.IntentMAC, collector.SecondaryConfig{})
		if err != nil {
			return err
		}

		var out []model.MACEntry
		for _, r := range results {
			out = append(out, normalize.MAC(r.PrimaryRows, r.Device.Key())...)
		}

		if macExcludeTrunk {
			trunkIfaces, err := collectSwitchportContext()
			if err != nil {
				return err
			}
			out = normalize.ExcludeTrunkPorts(out, trunkIfaces)
		}

		if app.jsonOut {
			if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
				return exitf(4, "encoding output: %w", err)
			}
		} else {
			printMAC(out)
		}

		finishRun()
		return nil
	},
}

func printMAC(entries []model.MACEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "DEVICE\tMAC\tVLAN\tINTERFACE\tTYPE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", e.Device, e.MAC, e.VLANID, e.Interface, e.Type)
	}
}

func init() {
	macCmd.Flags().BoolVar(&macExcludeTrunk, "exclude-trunk", false, "Drop MAC entries learned on a trunk (tagged/tagged-all) interface")
}

// collectSwitchportContext runs a second, interfaces+switchport
// collection pass across the fleet so --exclude-trunk has something to
// cross-reference; the mac intent's own rows carry no switchport mode.
func collectSwitchportContext() ([]model.Interface, error) {
	if err := requireDevicesFile(); err != nil {
		return nil, err
	}
	devices, err := loadFleet(app.devicesFile)
	if err != nil {
		return nil, exitf(2, "%w", err)
	}

	sc := collector.SecondaryConfig{Enabled: map[platform.Intent]bool{platform.IntentSwitchport: true}}
	results := app.engine.Run(devices, app.creds, platform.IntentInterfaces, sc)

	var out []model.Interface
	for _, r := range results {
		app.run.RecordDevice(deviceOutcome(r, platform.IntentInterfaces))
		if r.Err != nil {
			continue
		}
		ifaces := normalize.Interfaces(r.PrimaryRows, r.Device.Key())
		ifaces = normalize.EnrichWithSwitchport(ifaces, r.SecondaryRows[platform.IntentSwitchport])
		out = append(out, ifaces...)
	}
	return out, nil
}
