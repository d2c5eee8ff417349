package analyzer

import (
	"sort"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// topInstanceTypes limits the instance-type distribution to the entries the
// overview chart displays.
const topInstanceTypes = 10

// RegionDistributions returns one row per region with the running, stopped
// and total counts exactly as reported in the region's instance summary.
// The numbers are pre-aggregated collection metadata and are deliberately
// not recomputed from the instance details: if the input is inconsistent
// (running+stopped != total) the report exposes that rather than hiding it.
// Rows are sorted descending by total, ties ascending by region code.
func RegionDistributions(s *entity.Snapshot) []entity.RegionDistribution {
	if s == nil {
		return nil
	}

	rows := make([]entity.RegionDistribution, 0, len(s.Regions))
	for _, region := range s.Regions {
		rows = append(rows, entity.RegionDistribution{
			Region:  orNA(region.Region),
			Running: region.Instances.Running,
			Stopped: region.Instances.Stopped,
			Total:   region.Instances.Total,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Region < rows[j].Region
	})

	return rows
}

// InstanceTypeDistribution counts instance-type occurrences across the flat
// instance collection (missing type reads as "unknown") and returns the top
// ten, descending by count. Ties keep first-seen order, which a stable sort
// over the first-seen slice preserves.
func InstanceTypeDistribution(instances []entity.Instance) []entity.InstanceTypeCount {
	counts := make(map[string]int)
	var order []string

	for _, inst := range instances {
		itype := inst.InstanceType
		// Após a normalização um tipo ausente já virou "N/A", então os dois
		// valores caem no mesmo balde "unknown"; um "N/A" literal vindo do
		// coletor é indistinguível de um campo ausente aqui.
		if itype == "" || itype == entity.NotAvailable {
			itype = "unknown"
		}
		if _, seen := counts[itype]; !seen {
			order = append(order, itype)
		}
		counts[itype]++
	}

	rows := make([]entity.InstanceTypeCount, 0, len(order))
	for _, itype := range order {
		rows = append(rows, entity.InstanceTypeCount{InstanceType: itype, Count: counts[itype]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})

	if len(rows) > topInstanceTypes {
		rows = rows[:topInstanceTypes]
	}
	return rows
}
