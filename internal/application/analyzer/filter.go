package analyzer

import (
	"sort"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// MatchAll is the sentinel meaning "do not constrain on this dimension".
// The zero value is treated the same way so an unset flag never filters.
const MatchAll = "all"

// FilterStates is the fixed option set for the state dimension, independent
// of what states the snapshot actually contains.
var FilterStates = []string{"running", "stopped", "terminated"}

// InstanceFilter is an immutable set of equality constraints over the flat
// instance collection. Constraints are conjunctive: an instance survives
// only if it satisfies every active dimension.
type InstanceFilter struct {
	Region      string
	State       string
	Environment string
	Owner       string
}

// Apply returns the instances matching the filter, in input order. The
// result is a new slice; applying the same filter to its own output yields
// an identical result.
func (f InstanceFilter) Apply(instances []entity.Instance) []entity.Instance {
	out := make([]entity.Instance, 0, len(instances))
	for _, inst := range instances {
		if f.matches(inst) {
			out = append(out, inst)
		}
	}
	return out
}

func (f InstanceFilter) matches(inst entity.Instance) bool {
	return matchDimension(f.Region, inst.Region) &&
		matchDimension(f.State, inst.State) &&
		matchDimension(f.Environment, inst.Environment) &&
		matchDimension(f.Owner, inst.Owner)
}

func matchDimension(constraint, value string) bool {
	return constraint == "" || constraint == MatchAll || constraint == value
}

// FilterOptions holds the selectable values per filter dimension, derived
// from the current unfiltered instance collection.
type FilterOptions struct {
	Regions      []string
	States       []string
	Environments []string
	Owners       []string
}

// BuildFilterOptions derives the option sets: regions, environments and
// owners are the distinct values observed in the collection (the "N/A"
// default is excluded, so an instance without an owner never shows up as a
// selectable owner), sorted ascending for determinism. States is the fixed
// enumerated set regardless of observed data.
func BuildFilterOptions(instances []entity.Instance) FilterOptions {
	return FilterOptions{
		Regions:      distinctValues(instances, func(i entity.Instance) string { return i.Region }),
		States:       append([]string(nil), FilterStates...),
		Environments: distinctValues(instances, func(i entity.Instance) string { return i.Environment }),
		Owners:       distinctValues(instances, func(i entity.Instance) string { return i.Owner }),
	}
}

func distinctValues(instances []entity.Instance, field func(entity.Instance) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, inst := range instances {
		v := field(inst)
		if v == "" || v == entity.NotAvailable {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
