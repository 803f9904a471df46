package normalize

import (
	"strings"

	"github.com/netfleet/netinv/pkg/ifname"
	"github.com/netfleet/netinv/pkg/model"
)

// mediaHintToPortType maps a "media type is ..." / media_type string to a
// PortType, step 2 of spec.md §4.4's priority ladder.
func mediaHintToPortType(media string) (model.PortType, bool) {
	m := strings.ToLower(media)
	switch {
	case strings.Contains(m, "qsfp28"), strings.Contains(m, "qsfp+28"):
		return model.PortTypeQSFP28, true
	case strings.Contains(m, "qsfpdd"), strings.Contains(m, "qsfp-dd"):
		return model.PortTypeQSFPDD, true
	case strings.Contains(m, "sfp28"):
		return model.PortTypeSFP28, true
	case strings.Contains(m, "sfp+"), strings.Contains(m, "sfp-plus"):
		return model.PortTypeSFPPlus, true
	case strings.Contains(m, "sfp"):
		return model.PortTypeSFP, true
	case strings.Contains(m, "base-t"), strings.Contains(m, "rj45"), strings.Contains(m, "rj-45"):
		return model.PortTypeAccessCopper, true
	default:
		return "", false
	}
}

// hardwareHintToPortType maps a "Hardware is ..." string to a PortType,
// step 3 of the ladder — used when no media_type hint was present.
func hardwareHintToPortType(hw string) (model.PortType, bool) {
	h := strings.ToLower(hw)
	switch {
	case strings.Contains(h, "rj45"), strings.Contains(h, "rj-45"),
		strings.Contains(h, "10/100/1000"), strings.Contains(h, "ethernet csmacd"):
		return model.PortTypeAccessCopper, true
	default:
		return "", false
	}
}

// derivePortType applies the full priority ladder of spec.md §4.4:
// explicit field, media hint, hardware hint, then the name-prefix
// fallback in pkg/ifname.
func derivePortType(explicit model.PortType, media, hardware, canonicalName string) model.PortType {
	if explicit != "" && explicit != model.PortTypeUnknown {
		return explicit
	}
	if pt, ok := mediaHintToPortType(media); ok {
		return pt
	}
	if pt, ok := hardwareHintToPortType(hardware); ok {
		return pt
	}
	return ifname.ClassifyPortType(canonicalName)
}

// nbTypeTable keys nb_type strings by port_type, refined by a speed/media
// suffix where the corresponding NetBox interface type distinguishes
// speeds within the same physical form factor (e.g. 1G vs 10G copper).
var nbTypeTable = map[model.PortType]string{
	model.PortTypeAccessCopper: "1000base-t",
	model.PortTypeSFP:          "1000base-x-sfp",
	model.PortTypeSFPPlus:      "10gbase-x-sfpp",
	model.PortTypeSFP28:        "25gbase-x-sfp28",
	model.PortTypeQSFP28:       "100gbase-x-qsfp28",
	model.PortTypeQSFPDD:       "400gbase-x-qsfpdd",
	model.PortTypeLAG:          "lag",
	model.PortTypeVirtual:      "virtual",
	model.PortTypeLoopback:     "virtual",
	model.PortTypeMgmt:         "1000base-t",
	model.PortTypeUnknown:      "other",
}

// deriveNBType implements spec.md §4.4's "nb_type derivation via a second
// table keyed by port_type + optional speed/media refinement": the base
// lookup is refined when speedBPS indicates a different rate than the
// table's default assumption for that port_type.
func deriveNBType(pt model.PortType, speedBPS uint64) string {
	base, ok := nbTypeTable[pt]
	if !ok {
		return "other"
	}
	switch pt {
	case model.PortTypeAccessCopper:
		switch {
		case speedBPS >= 10_000_000_000:
			return "10gbase-t"
		case speedBPS >= 2_500_000_000:
			return "2.5gbase-t"
		case speedBPS >= 1_000_000_000, speedBPS == 0:
			return base
		default:
			return "100base-tx"
		}
	default:
		return base
	}
}
