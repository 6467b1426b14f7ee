package planning

import (
	"fmt"
	"strings"
)

// relationshipExpander builds OPTIONAL MATCH clauses connecting the primary
// entity to the query's secondary entities. Relationship types are not
// constrained: the graph schema names them per entity pair (USES, MITIGATES,
// SUBJECT_TO, ...) and the expansion stays schema-agnostic by matching any
// single-hop relationship in either direction.
type relationshipExpander struct{}

func newRelationshipExpander() *relationshipExpander {
	return &relationshipExpander{}
}

// expand returns the OPTIONAL MATCH block for the given secondary entities
// and the variables bound for them. A secondary entity whose variable would
// collide with one already bound gets a numbered variable instead.
func (x *relationshipExpander) expand(primary EntityType, secondary []EntityType) (string, []string) {
	if len(secondary) == 0 {
		return "", nil
	}

	bound := map[string]bool{primary.Variable(): true}
	clauses := make([]string, 0, len(secondary))
	vars := make([]string, 0, len(secondary))

	for i, entity := range secondary {
		variable := entity.Variable()
		if bound[variable] {
			variable = fmt.Sprintf("%s%d", variable, i)
		}
		bound[variable] = true

		clauses = append(clauses, fmt.Sprintf("OPTIONAL MATCH (%s)-[]-(%s:%s)",
			primary.Variable(), variable, entity.Label()))
		vars = append(vars, variable)
	}

	return strings.Join(clauses, "\n"), vars
}
