package entity

// Inventory holds the five flat, region-tagged collections produced by
// normalization. Insertion order is region order in the Snapshot, then
// source-list order within a region. Every element is a copy: mutating an
// Inventory never reaches back into the Snapshot it was derived from.
type Inventory struct {
	Instances     []Instance
	Untagged      []Instance
	Stopped       []Instance
	UnusedVolumes []Volume
	UnusedEIPs    []ElasticIP
}
