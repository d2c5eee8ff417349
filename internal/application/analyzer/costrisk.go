package analyzer

import "github.com/diillson/aws-finops-report-go/internal/domain/entity"

// DetectCostRisks counts the optimization opportunities present in the
// inventory: stopped instances, unused volumes (with their aggregate size)
// and unused Elastic IPs. The total is a plain additive score; each
// sub-metric independently drives a clear/warning presentation state
// (zero means clear).
func DetectCostRisks(inv entity.Inventory) entity.CostRiskReport {
	totalGB := 0
	for _, vol := range inv.UnusedVolumes {
		totalGB += vol.Size
	}

	report := entity.CostRiskReport{
		StoppedCount:       len(inv.Stopped),
		UnusedVolumeCount:  len(inv.UnusedVolumes),
		UnusedVolumeTotalG: totalGB,
		UnusedEIPCount:     len(inv.UnusedEIPs),
	}
	report.TotalCostRisk = report.StoppedCount + report.UnusedVolumeCount + report.UnusedEIPCount
	return report
}
