package normalize

import (
	"strings"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/parse"
)

// Inventory converts parsed "show inventory"/"show chassis hardware" rows
// into canonical InventoryItem records for one device, classifying each by
// its slot/description text.
func Inventory(rows []parse.Row, device, vendorTag string) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(rows))
	for _, row := range rows {
		slot := row.GetString("slot")
		if slot == "" {
			continue
		}
		out = append(out, model.InventoryItem{
			Device:      device,
			Slot:        slot,
			PartID:      row.GetString("part_id"),
			Serial:      row.GetString("serial"),
			VendorTag:   vendorTag,
			Description: row.GetString("description"),
			Kind:        classifyInventoryKind(slot, row.GetString("description")),
		})
	}
	return out
}

func classifyInventoryKind(slot, description string) model.InventoryKind {
	text := strings.ToLower(slot + " " + description)
	switch {
	case strings.Contains(text, "chassis"):
		return model.InventoryChassis
	case strings.Contains(text, "power supply"), strings.Contains(text, "psu"):
		return model.InventoryPSU
	case strings.Contains(text, "fan"):
		return model.InventoryFan
	case strings.Contains(text, "sfp"), strings.Contains(text, "gbic"), strings.Contains(text, "transceiver"):
		return model.InventorySFP
	case strings.Contains(text, "fpc"), strings.Contains(text, "module"), strings.Contains(text, "linecard"),
		strings.Contains(text, "supervisor"):
		return model.InventoryModule
	default:
		return model.InventoryOther
	}
}
