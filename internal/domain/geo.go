package domain

import (
	"github.com/opensamaj/samiti"
)

// DeletePolicy is the per-kind lifecycle policy for hierarchy deletions.
type DeletePolicy int

const (
	// DeleteHard removes the row; descendants go with it via the
	// ON DELETE CASCADE constraints.
	DeleteHard DeletePolicy = iota
	// DeleteSoft flips is_active off. The row stays addressable by id so
	// addresses referencing it keep resolving.
	DeleteSoft
)

// deletePolicies is intentionally asymmetric: states and districts are
// removed outright, talukas and cities are only deactivated. Both halves are
// load-bearing for existing address references, so the table is data rather
// than a special case per kind.
var deletePolicies = map[samiti.GeoKind]DeletePolicy{
	samiti.GeoKindState:    DeleteHard,
	samiti.GeoKindDistrict: DeleteHard,
	samiti.GeoKindTaluka:   DeleteSoft,
	samiti.GeoKindCity:     DeleteSoft,
}

// DeletePolicyFor returns the lifecycle policy for one hierarchy level.
func DeletePolicyFor(kind samiti.GeoKind) DeletePolicy {
	return deletePolicies[kind]
}
