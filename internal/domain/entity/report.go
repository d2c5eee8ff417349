package entity

// RegionDistribution is one row of the per-region instance distribution,
// carrying the counts exactly as reported in the region's instance summary.
type RegionDistribution struct {
	Region  string `json:"region"`
	Running int    `json:"running"`
	Stopped int    `json:"stopped"`
	Total   int    `json:"total"`
}

// InstanceTypeCount is one entry of the instance-type distribution.
type InstanceTypeCount struct {
	InstanceType string `json:"instance_type"`
	Count        int    `json:"count"`
}

// TagCount is one bucket of a tag-value distribution. The "N/A" default is
// a bucket like any other, so untagged instances stay visible in the chart.
type TagCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TagDistribution groups the instance counts per identity-tag value shown
// on the tag-analysis view.
type TagDistribution struct {
	// Environments keeps first-seen order.
	Environments []TagCount `json:"environments"`
	// CostCenters is the top ten, descending by count.
	CostCenters []TagCount `json:"cost_centers"`
	// Owners is the full set, descending by count.
	Owners []TagCount `json:"owners"`
}

// TagComplianceReport holds the two tagging-compliance views. MissingByTag
// is computed from each instance's tags mapping; the UntaggedDetails
// markers are computed from the flattened name/owner/cost_center/environment
// fields of the collector-supplied untagged list. The two checks follow
// different paths and may disagree on which instances are non-compliant.
type TagComplianceReport struct {
	MissingByTag    map[string][]Instance `json:"missing_by_tag"`
	UntaggedDetails []UntaggedDetail      `json:"untagged_details"`
	Compliant       bool                  `json:"compliant"`
}

// MissingCount returns the number of instances missing the given mandatory
// tag. Unknown tags count zero.
func (r TagComplianceReport) MissingCount(tag string) int {
	return len(r.MissingByTag[tag])
}

// UntaggedDetail is one row of the untagged-resources table, with one
// presence marker per mandatory tag.
type UntaggedDetail struct {
	InstanceID        string `json:"instance_id"`
	Name              string `json:"name"`
	Region            string `json:"region"`
	State             string `json:"state"`
	InstanceType      string `json:"instance_type"`
	HasNameTag        bool   `json:"has_name_tag"`
	HasOwnerTag       bool   `json:"has_owner_tag"`
	HasCostCenterTag  bool   `json:"has_cost_center_tag"`
	HasEnvironmentTag bool   `json:"has_environment_tag"`
}

// CostRiskReport counts the cost-optimization opportunities found in the
// snapshot. TotalCostRisk is a coarse additive score, not cost-weighted.
type CostRiskReport struct {
	StoppedCount       int `json:"stopped_instances"`
	UnusedVolumeCount  int `json:"unused_volumes"`
	UnusedVolumeTotalG int `json:"unused_volume_total_gb"`
	UnusedEIPCount     int `json:"unused_eips"`
	TotalCostRisk      int `json:"total_cost_risk"`
}

// ExecutiveSummary is the fixed-shape summary shown on the reports tab and
// embedded in exports. All values are recomputed from the flat collections
// and the snapshot's region list on every analysis pass.
type ExecutiveSummary struct {
	TotalInstances   int `json:"total_instances"`
	RunningInstances int `json:"running_instances"`
	StoppedInstances int `json:"stopped_instances"`
	UntaggedCount    int `json:"untagged_resources"`
	UnusedVolumes    int `json:"unused_volumes"`
	UnusedEIPs       int `json:"unused_eips"`
	TotalRegions     int `json:"total_regions"`
}

// ReportBundle groups every analytical view derived from one snapshot, as
// handed to the presentation layer and the PDF exporter.
type ReportBundle struct {
	Snapshot      *Snapshot            `json:"-"`
	Inventory     Inventory            `json:"-"`
	Summary       ExecutiveSummary     `json:"summary"`
	Regions       []RegionDistribution `json:"regions"`
	InstanceTypes []InstanceTypeCount  `json:"instance_types"`
	TagCompliance TagComplianceReport  `json:"tag_compliance"`
	TagCounts     TagDistribution      `json:"tag_counts"`
	CostRisks     CostRiskReport       `json:"cost_risks"`
}
