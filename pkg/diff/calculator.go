// Package diff implements DiffCalculator, spec.md §4.7: a pure,
// deterministic comparison of desired (collected) against observed (from
// NetBox) state, keyed by each entity's natural key, producing per-entity
// create/update/delete plans with field-level old/new pairs for updates.
package diff

import (
	"fmt"

	"github.com/netfleet/netinv/pkg/model"
)

// Devices compares desired against observed Device records, keyed by
// Device.Key() (friendly name, else host).
func Devices(desired, observed []model.Device) model.EntityPlan {
	observedByKey := make(map[string]model.Device, len(observed))
	for _, d := range observed {
		observedByKey[d.Key()] = d
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, d := range desired {
		key := d.Key()
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, d)
			continue
		}
		var changes []model.FieldChange
		if d.Site != o.Site {
			changes = append(changes, model.FieldChange{Field: "site", Old: o.Site, New: d.Site})
		}
		if d.Role != o.Role {
			changes = append(changes, model.FieldChange{Field: "role", Old: o.Role, New: d.Role})
		}
		if d.Platform != o.Platform {
			changes = append(changes, model.FieldChange{Field: "platform", Old: o.Platform, New: d.Platform})
		}
		if d.DeviceType != o.DeviceType {
			changes = append(changes, model.FieldChange{Field: "device_type", Old: o.DeviceType, New: d.DeviceType})
		}
		if len(changes) > 0 {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{Key: key, Changes: changes, Desired: d})
		}
	}
	for _, o := range observed {
		if _, ok := seen[o.Key()]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

func interfaceKey(device, name string) string {
	return device + "/" + name
}

// Interfaces compares desired against observed Interface records, keyed
// by (device, name).
func Interfaces(desired, observed []model.Interface) model.EntityPlan {
	observedByKey := make(map[string]model.Interface, len(observed))
	for _, i := range observed {
		observedByKey[interfaceKey(i.Device, i.Name)] = i
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, i := range desired {
		key := interfaceKey(i.Device, i.Name)
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, i)
			continue
		}
		changes := diffInterfaceFields(o, i)
		if len(changes) > 0 {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{Key: key, Changes: changes, Desired: i})
		}
	}
	for _, o := range observed {
		if _, ok := seen[interfaceKey(o.Device, o.Name)]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

// diffInterfaceFields compares exactly the field set spec.md §4.7 names
// for interfaces: name/type/description/enabled/mode/vlans.
func diffInterfaceFields(o, d model.Interface) []model.FieldChange {
	var changes []model.FieldChange
	if d.Description != o.Description {
		changes = append(changes, model.FieldChange{Field: "description", Old: o.Description, New: d.Description})
	}
	if d.Enabled != o.Enabled {
		changes = append(changes, model.FieldChange{Field: "enabled", Old: o.Enabled, New: d.Enabled})
	}
	if d.PortType != o.PortType {
		changes = append(changes, model.FieldChange{Field: "type", Old: o.PortType, New: d.PortType})
	}
	if d.Mode != o.Mode {
		changes = append(changes, model.FieldChange{Field: "mode", Old: o.Mode, New: d.Mode})
	}
	if !sameVLANSet(d.UntaggedVLANID, o.UntaggedVLANID) || !sameTaggedSet(d.TaggedVLANIDs, o.TaggedVLANIDs) {
		changes = append(changes, model.FieldChange{Field: "vlans", Old: vlanSummary(o), New: vlanSummary(d)})
	}
	return changes
}

func vlanSummary(i model.Interface) string {
	u := "none"
	if i.UntaggedVLANID != nil {
		u = fmt.Sprintf("%d", *i.UntaggedVLANID)
	}
	return fmt.Sprintf("untagged=%s,tagged=%d", u, len(i.TaggedVLANIDs))
}

func sameVLANSet(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTaggedSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// IPs compares desired against observed IPAddress records, keyed by
// (device, interface, address).
func IPs(desired, observed []model.IPAddress) model.EntityPlan {
	observedByKey := make(map[string]model.IPAddress, len(observed))
	for _, ip := range observed {
		observedByKey[ip.Key()] = ip
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, ip := range desired {
		key := ip.Key()
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, ip)
			continue
		}
		if ip.Primary != o.Primary {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{
				Key:     key,
				Changes: []model.FieldChange{{Field: "primary", Old: o.Primary, New: ip.Primary}},
				Desired: ip,
			})
		}
	}
	for _, o := range observed {
		if _, ok := seen[o.Key()]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

func vlanKey(v model.VLAN) string {
	return fmt.Sprintf("%s/%d", v.Site, v.VID)
}

// VLANs compares desired against observed VLAN records, keyed by
// (vid, site).
func VLANs(desired, observed []model.VLAN) model.EntityPlan {
	observedByKey := make(map[string]model.VLAN, len(observed))
	for _, v := range observed {
		observedByKey[vlanKey(v)] = v
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, v := range desired {
		key := vlanKey(v)
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, v)
			continue
		}
		if v.Name != o.Name {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{
				Key:     key,
				Changes: []model.FieldChange{{Field: "name", Old: o.Name, New: v.Name}},
				Desired: v,
			})
		}
	}
	for _, o := range observed {
		if _, ok := seen[vlanKey(o)]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

// Cables compares desired against observed Cable records, keyed by
// Cable.Key() (order-independent endpoint pair).
func Cables(desired, observed []model.Cable) model.EntityPlan {
	observedByKey := make(map[string]model.Cable, len(observed))
	for _, c := range observed {
		observedByKey[c.Key()] = c
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, c := range desired {
		key := c.Key()
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, c)
			continue
		}
		if c.Status != o.Status {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{
				Key:     key,
				Changes: []model.FieldChange{{Field: "status", Old: o.Status, New: c.Status}},
				Desired: c,
			})
		}
	}
	for _, o := range observed {
		if _, ok := seen[o.Key()]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

func inventoryKey(i model.InventoryItem) string {
	return i.Device + "/" + i.Slot
}

// Inventory compares desired against observed InventoryItem records,
// keyed by (device, slot).
func Inventory(desired, observed []model.InventoryItem) model.EntityPlan {
	observedByKey := make(map[string]model.InventoryItem, len(observed))
	for _, i := range observed {
		observedByKey[inventoryKey(i)] = i
	}

	var plan model.EntityPlan
	seen := map[string]struct{}{}
	for _, i := range desired {
		key := inventoryKey(i)
		seen[key] = struct{}{}
		o, ok := observedByKey[key]
		if !ok {
			plan.ToCreate = append(plan.ToCreate, i)
			continue
		}
		var changes []model.FieldChange
		if i.Serial != o.Serial {
			changes = append(changes, model.FieldChange{Field: "serial", Old: o.Serial, New: i.Serial})
		}
		if i.PartID != o.PartID {
			changes = append(changes, model.FieldChange{Field: "part_id", Old: o.PartID, New: i.PartID})
		}
		if len(changes) > 0 {
			plan.ToUpdate = append(plan.ToUpdate, model.UpdateRecord{Key: key, Changes: changes, Desired: i})
		}
	}
	for _, o := range observed {
		if _, ok := seen[inventoryKey(o)]; !ok {
			plan.ToDelete = append(plan.ToDelete, o)
		}
	}
	return plan
}

// Plan runs every per-entity comparison and assembles the full DiffPlan
// consumed by pkg/reconcile, per spec.md §4.7. toDelete entities are
// still computed here (to_delete requires an explicit cleanup flag only
// at apply time, per spec.md §4.7/§6 — DiffCalculator itself is
// unconditional and pure).
func Plan(desired, observed Snapshot) model.DiffPlan {
	return model.DiffPlan{
		Devices:    Devices(desired.Devices, observed.Devices),
		Interfaces: Interfaces(desired.Interfaces, observed.Interfaces),
		IPs:        IPs(desired.IPs, observed.IPs),
		VLANs:      VLANs(desired.VLANs, observed.VLANs),
		Cables:     Cables(desired.Cables, observed.Cables),
		Inventory:  Inventory(desired.Inventory, observed.Inventory),
	}
}

// Snapshot bundles one side (desired or observed) of every entity kind
// DiffCalculator compares, so callers can pass a single argument pair to
// Plan instead of six parallel slices.
type Snapshot struct {
	Devices    []model.Device
	Interfaces []model.Interface
	IPs        []model.IPAddress
	VLANs      []model.VLAN
	Cables     []model.Cable
	Inventory  []model.InventoryItem
}
