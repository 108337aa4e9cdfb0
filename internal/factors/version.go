package factors

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// DatasetVersion is the semantic version of the factor tables in this package.
// Bump the minor version when factors are added and the major version when an
// existing factor changes value.
const DatasetVersion = "1.0.0"

// ErrIncompatibleDataset is returned when the compiled-in factor tables do not
// satisfy a configured version constraint.
var ErrIncompatibleDataset = errors.New("factor dataset does not satisfy constraint")

// CheckCompatible validates DatasetVersion against a semver constraint such as
// "^1.0" or ">= 1.0.0, < 2.0.0". An empty constraint always passes.
func CheckCompatible(constraint string) error {
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing factor constraint %q: %w", constraint, err)
	}

	v := semver.MustParse(DatasetVersion)
	if ok, reasons := c.Validate(v); !ok {
		return fmt.Errorf("%w: %s %s: %v", ErrIncompatibleDataset, DatasetVersion, constraint, errors.Join(reasons...))
	}
	return nil
}
