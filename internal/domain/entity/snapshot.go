package entity

import "strings"

// NotAvailable is the literal substituted for every descriptive field that is
// absent in the snapshot document. Absence is a valid domain state, never an
// error; analysis code compares against this value instead of "".
const NotAvailable = "N/A"

// Snapshot is one point-in-time, multi-region inventory capture of AWS
// compute resources, as produced by the collection step. It is immutable
// once loaded: every analysis pass derives fresh flat views from it.
type Snapshot struct {
	AccountID           string           `json:"account_id"`
	AccountAlias        string           `json:"account_alias"`
	UserARN             string           `json:"user_arn"`
	CollectionTimestamp string           `json:"collection_timestamp"`
	Regions             []RegionSnapshot `json:"regions"`
}

// UserDisplayName returns the last path segment of the collector's ARN,
// which is the identity shown in the report header.
func (s *Snapshot) UserDisplayName() string {
	if s.UserARN == "" {
		return NotAvailable
	}
	parts := strings.Split(s.UserARN, "/")
	return parts[len(parts)-1]
}

// RegionSnapshot holds everything collected for a single region.
type RegionSnapshot struct {
	Region            string            `json:"region"`
	Instances         InstanceReport    `json:"instances"`
	UntaggedResources UntaggedResources `json:"untagged_resources"`
	StoppedInstances  StoppedInstances  `json:"stopped_instances"`
	UnusedVolumes     UnusedVolumes     `json:"unused_volumes"`
	UnusedEIPs        UnusedEIPs        `json:"unused_eips"`
}

// InstanceReport carries the collector's pre-aggregated per-region counts
// alongside the instance details. The counts are reported as collected and
// are never re-derived from Details (running+stopped may disagree with
// Total in the input; the report surfaces the raw numbers).
type InstanceReport struct {
	Running int        `json:"running"`
	Stopped int        `json:"stopped"`
	Total   int        `json:"total"`
	Details []Instance `json:"details"`
}

// UntaggedResources lists instances the collector flagged as missing
// mandatory tags.
type UntaggedResources struct {
	Instances []Instance `json:"instances"`
}

// StoppedInstances lists instances in the stopped state.
type StoppedInstances struct {
	Details []Instance `json:"details"`
}

// UnusedVolumes lists EBS volumes not attached to any instance.
type UnusedVolumes struct {
	Details []Volume `json:"details"`
}

// UnusedEIPs lists Elastic IPs not associated with any resource.
type UnusedEIPs struct {
	Details []ElasticIP `json:"details"`
}

// Instance is a single EC2 instance. Region is not part of the collected
// document: it is injected during normalization as a back-reference to the
// enclosing RegionSnapshot and is never mutated afterwards.
type Instance struct {
	InstanceID   string            `json:"instance_id"`
	Name         string            `json:"name"`
	State        string            `json:"state"`
	InstanceType string            `json:"instance_type"`
	OS           string            `json:"os,omitempty"`
	Platform     string            `json:"platform,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
	Owner        string            `json:"owner"`
	CostCenter   string            `json:"cost_center"`
	Environment  string            `json:"environment"`
	VPCID        string            `json:"vpc_id"`
	PrivateIP    string            `json:"private_ip"`
	PublicIP     string            `json:"public_ip"`
	Region       string            `json:"region,omitempty"`
}

// OperatingSystem resolves the instance OS, falling back from the os field
// to the platform field before defaulting.
func (i Instance) OperatingSystem() string {
	if i.OS != "" {
		return i.OS
	}
	if i.Platform != "" {
		return i.Platform
	}
	return NotAvailable
}

// Volume is a single EBS volume. Size is in GB; an absent size reads as 0.
type Volume struct {
	VolumeID   string `json:"volume_id"`
	Size       int    `json:"size"`
	VolumeType string `json:"volume_type"`
	Region     string `json:"region,omitempty"`
}

// ElasticIP is a single allocated Elastic IP address.
type ElasticIP struct {
	AllocationID string `json:"allocation_id"`
	PublicIP     string `json:"public_ip"`
	Region       string `json:"region,omitempty"`
}
