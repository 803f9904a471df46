package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
	"github.com/netfleet/netinv/pkg/normalize"
	"github.com/netfleet/netinv/pkg/platform"
	"github.com/netfleet/netinv/pkg/reconcile"
)

// netboxRetryBackoff is the delay between retried NetBox REST calls.
// EngineConfig has no NetBox-specific backoff knob (just timeout and
// max-retries); this mirrors engconfig.Defaults' SSH backoff value.
const netboxRetryBackoff = 2 * time.Second

var syncOpts reconcile.SyncOptions
var syncAll bool

var syncNetboxCmd = &cobra.Command{
	Use:   "sync-netbox",
	Short: "Collect the fleet and reconcile it into NetBox",
	RunE: func(cmd *cobra.Command, args []string) error {
		if syncAll {
			syncOpts.CreateDevices = true
			syncOpts.UpdateDevices = true
			syncOpts.Interfaces = true
			syncOpts.IPAddresses = true
			syncOpts.Cables = true
			syncOpts.VLANs = true
			syncOpts.Inventory = true
		}
		if syncOpts.Cleanup && syncOpts.Tenant == "" {
			return exitf(2, "--cleanup requires --tenant")
		}
		switch app.protocol {
		case "lldp", "cdp", "both":
		default:
			return exitf(2, "--protocol must be one of lldp|cdp|both, got %q", app.protocol)
		}

		if err := requireDevicesFile(); err != nil {
			return err
		}
		devices, err := loadFleet(app.devicesFile)
		if err != nil {
			return exitf(2, "%w", err)
		}

		netboxURL, netboxToken, err := resolveNetBoxTarget(app.engineCfg.NetBoxURL, app.engineCfg.NetBoxToken)
		if err != nil {
			return exitf(2, "%w", err)
		}
		app.netboxClient = netbox.New(netboxURL, netboxToken, app.engineCfg.NetBoxTimeout, app.engineCfg.NetBoxMaxRetries, netboxRetryBackoff)
		app.run.DryRun = syncOpts.DryRun

		inv := buildDesiredInventory(devices)

		r := &reconcile.Reconciler{API: app.netboxClient, Run: app.run}
		summary, err := r.Sync(context.Background(), inv, syncOpts)
		if err != nil {
			if model.Classify(err) == model.CategoryAuthentication {
				return exitf(3, "NetBox authentication failed: %w", err)
			}
			return exitf(2, "%w", err)
		}
		if netboxAuthFailed(summary) {
			return exitf(3, "NetBox authentication failed during sync")
		}

		if err := app.history.Append(historyEntryFromRun(summary)); err != nil {
			app.log.WithError(err).Warn("writing history entry failed")
		}
		printRunSummary(summary)
		os.Exit(summary.ExitCode())
		return nil
	},
}

func init() {
	syncNetboxCmd.Flags().BoolVar(&syncOpts.CreateDevices, "create-devices", false, "Create devices missing from NetBox")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.UpdateDevices, "update-devices", false, "Update devices that differ from NetBox")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.Interfaces, "interfaces", false, "Sync interfaces")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.IPAddresses, "ip-addresses", false, "Sync IP addresses")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.Cables, "cables", false, "Sync cables derived from LLDP/CDP")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.VLANs, "vlans", false, "Sync VLANs (explicit and SVI-derived)")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.Inventory, "inventory", false, "Sync inventory items")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.Cleanup, "cleanup", false, "Delete NetBox devices absent from the fleet (requires --tenant)")
	syncNetboxCmd.Flags().BoolVar(&syncAll, "sync-all", false, "Shorthand for every entity-kind flag above")
	syncNetboxCmd.Flags().BoolVar(&syncOpts.DryRun, "dry-run", true, "Preview changes without writing to NetBox")
	syncNetboxCmd.Flags().StringVar(&syncOpts.Site, "site", "", "Restrict cleanup's observed-device scan to this site")
	syncNetboxCmd.Flags().StringVar(&syncOpts.Role, "role", "", "Restrict cleanup's observed-device scan to this role")
	syncNetboxCmd.Flags().StringVar(&syncOpts.Tenant, "tenant", "", "Tenant scope, required with --cleanup")
	syncNetboxCmd.Flags().StringVar(&app.protocol, "protocol", "lldp", "Neighbor discovery protocol: lldp|cdp|both")
}

// buildDesiredInventory runs the devices/interfaces/inventory/lldp
// collections needed to assemble a reconcile.Inventory. Cables are only
// collected when --cables (or --sync-all) is set, since LLDP collection
// against a large fleet is the most expensive single pass.
func buildDesiredInventory(devices []model.Device) reconcile.Inventory {
	var inv reconcile.Inventory

	sc := collector.SecondaryConfig{Enabled: map[platform.Intent]bool{
		platform.IntentLAG:        true,
		platform.IntentSwitchport: true,
		platform.IntentMediaType:  true,
	}}

	deviceResults := app.engine.Run(devices, app.creds, platform.IntentDevices, collector.SecondaryConfig{})
	for _, r := range deviceResults {
		app.run.RecordDevice(deviceOutcome(r, platform.IntentDevices))
		if r.Err != nil {
			continue
		}
		inv.Devices = append(inv.Devices, normalize.Devices(r.PrimaryRows, r.Device))
	}

	ifaceResults := app.engine.Run(devices, app.creds, platform.IntentInterfaces, sc)
	for _, r := range ifaceResults {
		app.run.RecordDevice(deviceOutcome(r, platform.IntentInterfaces))
		if r.Err != nil {
			continue
		}
		ifaces := normalize.Interfaces(r.PrimaryRows, r.Device.Key())
		ifaces = normalize.EnrichWithLAG(ifaces, r.SecondaryRows[platform.IntentLAG])
		ifaces = normalize.EnrichWithSwitchport(ifaces, r.SecondaryRows[platform.IntentSwitchport])
		ifaces = normalize.EnrichWithMediaType(ifaces, r.SecondaryRows[platform.IntentMediaType])
		inv.Interfaces = append(inv.Interfaces, ifaces...)
		inv.IPs = append(inv.IPs, ipsFromInterfaces(ifaces)...)
	}

	invResults := app.engine.Run(devices, app.creds, platform.IntentInventory, collector.SecondaryConfig{})
	for _, r := range invResults {
		app.run.RecordDevice(deviceOutcome(r, platform.IntentInventory))
		if r.Err != nil {
			continue
		}
		vendorTag := ""
		if entry, err := app.registry.Resolve(r.Device.Platform); err == nil {
			vendorTag = entry.VendorTag
		}
		inv.Items = append(inv.Items, normalize.Inventory(r.PrimaryRows, r.Device.Key(), vendorTag)...)
	}

	if syncOpts.Cables {
		lldpResults := app.engine.Run(devices, app.creds, platform.IntentLLDP, collector.SecondaryConfig{})
		var neighbors []model.LLDPNeighbor
		for _, r := range lldpResults {
			app.run.RecordDevice(deviceOutcome(r, platform.IntentLLDP))
			if r.Err != nil {
				continue
			}
			neighbors = append(neighbors, normalize.LLDP(r.PrimaryRows, r.Device.Key())...)
		}
		inv.Cables = normalize.CablesFromLLDP(neighbors)
	}

	return inv
}

// ipsFromInterfaces derives the desired IP-address list from each
// interface's IP4 field, marking the first populated address per device
// as primary (the fleet file carries no richer primary-IP signal).
func ipsFromInterfaces(interfaces []model.Interface) []model.IPAddress {
	var out []model.IPAddress
	primarySet := make(map[string]bool)
	for _, i := range interfaces {
		if i.IP4 == "" {
			continue
		}
		ip := model.IPAddress{Device: i.Device, Interface: i.Name, Address: i.IP4}
		if !primarySet[i.Device] {
			ip.Primary = true
			primarySet[i.Device] = true
		}
		out = append(out, ip)
	}
	return out
}

func historyEntryFromRun(summary model.RunSummary) model.HistoryEntry {
	return model.HistoryEntry{
		RunID:     summary.RunID,
		StartTime: app.run.StartTime.Format(time.RFC3339),
		EndTime:   time.Now().Format(time.RFC3339),
		DryRun:    summary.DryRun,
		Summary:   summary,
	}
}

// netboxAuthFailed reports whether any device outcome recorded a NetBox
// authentication error. A single failed REST call is counted against
// that device rather than aborting the whole sync, but an auth failure
// still needs to surface as the dedicated exit code 3.
func netboxAuthFailed(summary model.RunSummary) bool {
	for _, d := range summary.Devices {
		for _, e := range d.Errors {
			if strings.Contains(e, model.ErrAuthenticationFailed.Error()) {
				return true
			}
		}
	}
	return false
}
