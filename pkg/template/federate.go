package template

import "strings"

// Federation sentinels. A template author marks the triple patterns that
// belong to the equipment profile by fencing them between these comment
// lines. Which patterns are equipment-side is declared per template, never
// inferred from predicate namespaces.
const (
	EquipmentBegin = "#!equipment-begin"
	EquipmentEnd   = "#!equipment-end"
)

// Federate restructures an expanded query for a split Equipment versus
// Topology/State hosting. The sentinel-fenced block is wrapped in a
// SERVICE <equipmentGraphRef> sub-query so the equipment-profile patterns
// execute against the separate graph while the remaining patterns stay with
// the primary store; results join locally on shared identifiers.
//
// With an empty equipmentGraphRef the sentinels are stripped and the
// patterns stay inline, for single-store deployments. A query without
// sentinels passes through unchanged. Unbalanced or nested sentinels are a
// TemplateError.
func Federate(query, equipmentGraphRef string) (string, error) {
	if !strings.Contains(query, EquipmentBegin) && !strings.Contains(query, EquipmentEnd) {
		return query, nil
	}

	var (
		out     []string
		block   []string
		inBlock bool
	)
	for _, line := range strings.Split(query, "\n") {
		switch strings.TrimSpace(line) {
		case EquipmentBegin:
			if inBlock {
				return "", &TemplateError{Reason: "nested " + EquipmentBegin}
			}
			inBlock = true
			block = block[:0]
		case EquipmentEnd:
			if !inBlock {
				return "", &TemplateError{Reason: EquipmentEnd + " without " + EquipmentBegin}
			}
			inBlock = false
			if equipmentGraphRef == "" {
				out = append(out, block...)
			} else {
				out = append(out, "SERVICE <"+equipmentGraphRef+"> {")
				out = append(out, block...)
				out = append(out, "}")
			}
		default:
			if inBlock {
				block = append(block, line)
			} else {
				out = append(out, line)
			}
		}
	}
	if inBlock {
		return "", &TemplateError{Reason: EquipmentBegin + " without " + EquipmentEnd}
	}
	return strings.Join(out, "\n"), nil
}
