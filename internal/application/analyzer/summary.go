package analyzer

import "github.com/diillson/aws-finops-report-go/internal/domain/entity"

// BuildSummary assembles the fixed-shape executive summary. Every value is
// recomputed from the flat collections and the snapshot's region list: the
// instance totals come from the flattened details, not from the per-region
// summary counts, so the two can legitimately differ when the input is
// inconsistent.
func BuildSummary(s *entity.Snapshot, inv entity.Inventory) entity.ExecutiveSummary {
	running := 0
	for _, inst := range inv.Instances {
		if inst.State == "running" {
			running++
		}
	}

	regions := 0
	if s != nil {
		regions = len(s.Regions)
	}

	return entity.ExecutiveSummary{
		TotalInstances:   len(inv.Instances),
		RunningInstances: running,
		StoppedInstances: len(inv.Stopped),
		UntaggedCount:    len(inv.Untagged),
		UnusedVolumes:    len(inv.UnusedVolumes),
		UnusedEIPs:       len(inv.UnusedEIPs),
		TotalRegions:     regions,
	}
}

// BuildReport runs every analysis over one snapshot and bundles the results
// for the presentation layer and the exporters. The individual analyses are
// independent; ordering here is display order only.
func BuildReport(s *entity.Snapshot) entity.ReportBundle {
	inv := BuildInventory(s)
	return entity.ReportBundle{
		Snapshot:      s,
		Inventory:     inv,
		Summary:       BuildSummary(s, inv),
		Regions:       RegionDistributions(s),
		InstanceTypes: InstanceTypeDistribution(inv.Instances),
		TagCompliance: AnalyzeTagging(inv),
		TagCounts:     TagDistributions(inv.Instances),
		CostRisks:     DetectCostRisks(inv),
	}
}
