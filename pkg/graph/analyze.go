package graph

import (
	"math"
	"sort"
	"strings"

	"github.com/rankwise/semgraph/pkg/common"
)

const (
	// Target entity count at which the volume sub-score saturates.
	entityCountTarget = 15.0
	// Relations per entity at which the density sub-score saturates.
	relationDensityTarget = 1.5
	// Each of the four sub-scores contributes at most this many points.
	subScoreCap = 25.0
	// Predicate distribution is truncated to this many entries.
	predicateDistributionLimit = 8
)

// PredicateCount is one row of the predicate frequency table.
type PredicateCount struct {
	Predicate string `json:"predicate"`
	Count     int    `json:"count"`
}

// SubScores are the four capped components of the authority score.
type SubScores struct {
	EntityCount     float64 `json:"entity_count"`
	RelationDensity float64 `json:"relation_density"`
	SchemaCoverage  float64 `json:"schema_coverage"`
	Connectivity    float64 `json:"connectivity"`
}

// Metrics is the derived view the analyzer computes from a snapshot.
type Metrics struct {
	EntityCount           int                       `json:"entity_count"`
	RelationCount         int                       `json:"relation_count"`
	ConnectedIDs          []string                  `json:"connected_ids"`
	Disconnected          []common.Entity           `json:"disconnected"`
	RelationCountByEntity map[string]int            `json:"relation_count_by_entity"`
	TypeDistribution      map[common.EntityType]int `json:"type_distribution"`
	PredicateDistribution []PredicateCount          `json:"predicate_distribution"`
	AuthorityScore        int                       `json:"authority_score"`
	SubScores             SubScores                 `json:"sub_scores"`
}

// Connected reports whether the entity id participates in at least one
// relation of the analyzed snapshot.
func (m Metrics) Connected(id string) bool {
	for _, connected := range m.ConnectedIDs {
		if connected == id {
			return true
		}
	}
	return false
}

// Analyze computes connectivity, distributions and the authority score
// for one graph snapshot. It is a pure function; relations referencing
// entities missing from the snapshot are skipped instead of failing.
func Analyze(g common.Graph) Metrics {
	known := make(map[string]bool, len(g.Entities))
	for _, entity := range g.Entities {
		known[entity.ID] = true
	}

	connected := make(map[string]bool)
	relationCounts := make(map[string]int)
	predicateCounts := make(map[string]int)
	var predicateOrder []string
	relationCount := 0

	for _, relation := range g.Relations {
		if !known[relation.SubjectID] || !known[relation.ObjectID] {
			continue
		}
		relationCount++
		connected[relation.SubjectID] = true
		connected[relation.ObjectID] = true
		relationCounts[relation.SubjectID]++
		relationCounts[relation.ObjectID]++
		if _, seen := predicateCounts[relation.Predicate]; !seen {
			predicateOrder = append(predicateOrder, relation.Predicate)
		}
		predicateCounts[relation.Predicate]++
	}

	typeCounts := make(map[common.EntityType]int)
	var disconnected []common.Entity
	withSchema := 0
	for _, entity := range g.Entities {
		typeCounts[entity.Type]++
		if strings.TrimSpace(entity.SchemaType) != "" {
			withSchema++
		}
		if !connected[entity.ID] {
			disconnected = append(disconnected, entity)
		}
	}

	connectedIDs := make([]string, 0, len(connected))
	for _, entity := range g.Entities {
		if connected[entity.ID] {
			connectedIDs = append(connectedIDs, entity.ID)
		}
	}

	predicates := make([]PredicateCount, len(predicateOrder))
	for i, predicate := range predicateOrder {
		predicates[i] = PredicateCount{Predicate: predicate, Count: predicateCounts[predicate]}
	}
	// Ties keep first-seen order; SliceStable preserves it.
	sort.SliceStable(predicates, func(i, j int) bool {
		return predicates[i].Count > predicates[j].Count
	})
	if len(predicates) > predicateDistributionLimit {
		predicates = predicates[:predicateDistributionLimit]
	}

	entityCount := len(g.Entities)
	sub := SubScores{
		EntityCount: math.Min(float64(entityCount)/entityCountTarget, 1) * subScoreCap,
	}
	if entityCount > 1 {
		sub.RelationDensity = math.Min(float64(relationCount)/(float64(entityCount)*relationDensityTarget), 1) * subScoreCap
	}
	if entityCount > 0 {
		sub.SchemaCoverage = float64(withSchema) / float64(entityCount) * subScoreCap
		sub.Connectivity = float64(entityCount-len(disconnected)) / float64(entityCount) * subScoreCap
	}

	return Metrics{
		EntityCount:           entityCount,
		RelationCount:         relationCount,
		ConnectedIDs:          connectedIDs,
		Disconnected:          disconnected,
		RelationCountByEntity: relationCounts,
		TypeDistribution:      typeCounts,
		PredicateDistribution: predicates,
		AuthorityScore:        int(math.Round(sub.EntityCount + sub.RelationDensity + sub.SchemaCoverage + sub.Connectivity)),
		SubScores:             sub,
	}
}
