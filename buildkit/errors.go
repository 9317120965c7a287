package buildkit

import (
	"errors"
	"strconv"
	"strings"
)

// ErrIncomplete matches every IncompleteError via errors.Is.
var ErrIncomplete = errors.New("buildkit: builder incomplete")

// IncompleteError is returned by a generated Build when required fields were never set.
type IncompleteError struct {
	// Type is the name of the type the builder constructs.
	Type string

	// Missing lists the unset fields in declaration order.
	Missing []string
}

// Error implements the error interface.
func (e IncompleteError) Error() string {
	// Example: buildkit: Command incomplete: missing "Args", "Env"
	quoted := make([]string, len(e.Missing))
	for i, name := range e.Missing {
		quoted[i] = strconv.Quote(name)
	}
	return "buildkit: " + e.Type + " incomplete: missing " + strings.Join(quoted, ", ")
}

// Is lets errors.Is(err, ErrIncomplete) match.
func (e IncompleteError) Is(target error) bool { return target == ErrIncomplete }
