package analyzer

import "github.com/diillson/aws-finops-report-go/internal/domain/entity"

// Mandatory tag keys, in display order.
const (
	TagName        = "Name"
	TagOwner       = "owner"
	TagCostCenter  = "CostCenter"
	TagEnvironment = "Environment"
)

// MandatoryTags is the fixed set of tags every instance must carry.
var MandatoryTags = []string{TagName, TagOwner, TagCostCenter, TagEnvironment}

// AnalyzeTagging classifies instances by presence of the mandatory tags.
//
// The missing buckets are computed over the full instance collection from
// each instance's tags mapping: a tag is missing when the key is absent or
// its value is "N/A". The untagged detail rows are computed over the
// collector-supplied untagged list from the flattened name/owner/
// cost_center/environment fields instead. The two checks intentionally
// follow different paths and may disagree; the discrepancy is surfaced
// as-is pending product clarification, not reconciled here.
func AnalyzeTagging(inv entity.Inventory) entity.TagComplianceReport {
	report := entity.TagComplianceReport{
		MissingByTag: make(map[string][]entity.Instance, len(MandatoryTags)),
		Compliant:    len(inv.Untagged) == 0,
	}
	for _, tag := range MandatoryTags {
		report.MissingByTag[tag] = nil
	}

	for _, inst := range inv.Instances {
		for _, tag := range MandatoryTags {
			if tagMissing(inst.Tags, tag) {
				report.MissingByTag[tag] = append(report.MissingByTag[tag], inst)
			}
		}
	}

	for _, inst := range inv.Untagged {
		report.UntaggedDetails = append(report.UntaggedDetails, entity.UntaggedDetail{
			InstanceID:        inst.InstanceID,
			Name:              inst.Name,
			Region:            inst.Region,
			State:             inst.State,
			InstanceType:      inst.InstanceType,
			HasNameTag:        inst.Name != entity.NotAvailable,
			HasOwnerTag:       inst.Owner != entity.NotAvailable,
			HasCostCenterTag:  inst.CostCenter != entity.NotAvailable,
			HasEnvironmentTag: inst.Environment != entity.NotAvailable,
		})
	}

	return report
}

// tagMissing reports whether a mandatory tag is absent from the mapping or
// carries the "N/A" default.
func tagMissing(tags map[string]string, key string) bool {
	value, ok := tags[key]
	return !ok || value == entity.NotAvailable
}
