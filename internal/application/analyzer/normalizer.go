// Package analyzer is the analytical core of the report engine: pure
// functions that turn an immutable snapshot into the views the presentation
// layer renders. Nothing here touches AWS, the filesystem, or the console,
// and no function keeps state between calls, so concurrent invocation over
// the same snapshot needs no coordination.
package analyzer

import "github.com/diillson/aws-finops-report-go/internal/domain/entity"

// BuildInventory flattens the snapshot's nested per-region collections into
// five flat, region-tagged collections. Each entity is copied, given the
// enclosing region code as a back-reference, and appended in region order
// then source-list order. Field defaulting is applied on the copies so that
// every later field access is total; the snapshot itself is left untouched.
func BuildInventory(s *entity.Snapshot) entity.Inventory {
	var inv entity.Inventory
	if s == nil {
		return inv
	}

	for _, region := range s.Regions {
		for _, inst := range region.Instances.Details {
			inv.Instances = append(inv.Instances, normalizeInstance(inst, region.Region))
		}
		for _, inst := range region.UntaggedResources.Instances {
			inv.Untagged = append(inv.Untagged, normalizeInstance(inst, region.Region))
		}
		for _, inst := range region.StoppedInstances.Details {
			inv.Stopped = append(inv.Stopped, normalizeInstance(inst, region.Region))
		}
		for _, vol := range region.UnusedVolumes.Details {
			inv.UnusedVolumes = append(inv.UnusedVolumes, normalizeVolume(vol, region.Region))
		}
		for _, eip := range region.UnusedEIPs.Details {
			inv.UnusedEIPs = append(inv.UnusedEIPs, normalizeEIP(eip, region.Region))
		}
	}

	return inv
}

// normalizeInstance copies the instance, injects the region back-reference
// and substitutes "N/A" for every absent descriptive field. The tags map is
// copied as well so the flat view never aliases the snapshot.
func normalizeInstance(inst entity.Instance, region string) entity.Instance {
	out := inst
	out.Region = region
	out.InstanceID = orNA(inst.InstanceID)
	out.Name = orNA(inst.Name)
	out.State = orNA(inst.State)
	out.InstanceType = orNA(inst.InstanceType)
	out.OS = inst.OperatingSystem()
	out.Owner = orNA(inst.Owner)
	out.CostCenter = orNA(inst.CostCenter)
	out.Environment = orNA(inst.Environment)
	out.VPCID = orNA(inst.VPCID)
	out.PrivateIP = orNA(inst.PrivateIP)
	out.PublicIP = orNA(inst.PublicIP)
	if inst.Tags != nil {
		out.Tags = make(map[string]string, len(inst.Tags))
		for k, v := range inst.Tags {
			out.Tags[k] = v
		}
	}
	return out
}

func normalizeVolume(vol entity.Volume, region string) entity.Volume {
	out := vol
	out.Region = region
	out.VolumeID = orNA(vol.VolumeID)
	out.VolumeType = orNA(vol.VolumeType)
	return out
}

func normalizeEIP(eip entity.ElasticIP, region string) entity.ElasticIP {
	out := eip
	out.Region = region
	out.AllocationID = orNA(eip.AllocationID)
	out.PublicIP = orNA(eip.PublicIP)
	return out
}

// orNA is the single default-resolution function for descriptive string
// fields: absent means the "N/A" domain value, never an error.
func orNA(v string) string {
	if v == "" {
		return entity.NotAvailable
	}
	return v
}
