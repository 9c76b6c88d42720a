package leaf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/schema"
)

var tVariable = reflect.ValueOf(struct{ A frontend.Variable }{}).FieldByName("A").Type()

// CheckAssigned walks the wires of an assignment and returns
// ErrMissingWitness with the names of the wires that have no value.
func CheckAssigned(assignment frontend.Circuit) error {
	var missing []string
	if _, err := schema.Walk(assignment, tVariable, func(info schema.LeafInfo, tValue reflect.Value) error {
		if tValue.IsNil() {
			missing = append(missing, info.FullName())
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to walk the assignment: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingWitness, strings.Join(missing, ", "))
	}
	return nil
}
