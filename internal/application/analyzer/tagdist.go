package analyzer

import (
	"sort"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// topCostCenters limits the cost-center distribution to the entries the
// tag-analysis view displays.
const topCostCenters = 10

// TagDistributions counts instances per value of the three identity tags.
// The counts run over the full flat collection and include the "N/A"
// bucket, so untagged instances remain visible. Environments keep
// first-seen order; cost centers are sorted descending by count and
// truncated to the top ten; owners are sorted descending by count without
// truncation. Ties keep first-seen order.
func TagDistributions(instances []entity.Instance) entity.TagDistribution {
	environments := countByField(instances, func(i entity.Instance) string { return i.Environment })

	costCenters := countByField(instances, func(i entity.Instance) string { return i.CostCenter })
	sortByCountDesc(costCenters)
	if len(costCenters) > topCostCenters {
		costCenters = costCenters[:topCostCenters]
	}

	owners := countByField(instances, func(i entity.Instance) string { return i.Owner })
	sortByCountDesc(owners)

	return entity.TagDistribution{
		Environments: environments,
		CostCenters:  costCenters,
		Owners:       owners,
	}
}

// countByField buckets instances by the given field value, in first-seen
// order. An empty value lands in the "N/A" bucket; post-normalization that
// only happens for collections that bypassed BuildInventory.
func countByField(instances []entity.Instance, field func(entity.Instance) string) []entity.TagCount {
	counts := make(map[string]int)
	var order []string

	for _, inst := range instances {
		value := field(inst)
		if value == "" {
			value = entity.NotAvailable
		}
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	rows := make([]entity.TagCount, 0, len(order))
	for _, value := range order {
		rows = append(rows, entity.TagCount{Value: value, Count: counts[value]})
	}
	return rows
}

func sortByCountDesc(rows []entity.TagCount) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
}
