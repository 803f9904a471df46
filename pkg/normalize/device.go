package normalize

import (
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// Devices merges the `devices` intent's parsed hostname into the seed
// Device the caller supplied for collection, per spec.md §3's "friendly
// Name defaults to the collected hostname" rule. seed carries the fields
// the caller already knows (Host, Platform, Site, Role, Enabled); only
// Name is filled in from the collected row. An empty rows slice
// (collection failed or the platform has no devices template) returns
// seed unchanged.
//
// The row's "vendor" field (spec.md §3 scenario 1's "vendor tags
// cisco/qtech") is deliberately not merged into DeviceType here:
// DeviceType is the NetBox device-type model hint, a distinct concept
// from vendor identity (spec.md §9 Open Questions). A device's vendor is
// already fully determined by its Platform and resolved on demand via
// pkg/platform.PlatformEntry.VendorTag — callers that need to display or
// compare it should resolve it there rather than have this function
// duplicate it onto the Device record.
func Devices(rows []parse.Row, seed model.Device) model.Device {
	if len(rows) == 0 {
		return seed
	}
	if host := rows[0].GetString("hostname"); host != "" && seed.Name == "" {
		seed.Name = host
	}
	return seed
}
