package types

import (
	"context"
	"fmt"
)

// Invariant audits stored state. It returns a report and whether the
// invariant is broken.
type Invariant func(ctx context.Context) (string, bool)

// FormatInvariant renders an invariant report the same way for every route.
func FormatInvariant(module, name, msg string) string {
	return fmt.Sprintf("%s: %s invariant\n%s\n", module, name, msg)
}
