package fields

import (
	"fmt"

	"github.com/poiesic/filescout/condition"
)

// Fixed leading columns of every result schema.
const (
	HeaderFilename = "Filename"
	HeaderPath     = "Path"
)

// ResolveHeaders computes the final ordered, deduplicated column list for a
// run: the two fixed columns, then the condition's capture names in
// declaration order, then each source's headers in configuration order.
//
// On collision with an already-accepted name, the later name gets the lowest
// unused numeric suffix " (n)" starting at 2. The result is a pure function
// of its inputs: resolving the same configuration twice yields the same list,
// and every name in it is unique.
func ResolveHeaders(cond condition.Condition, sources []Source) []string {
	headers := []string{HeaderFilename, HeaderPath}
	seen := map[string]bool{HeaderFilename: true, HeaderPath: true}

	accept := func(name string) {
		unique := name
		for n := 2; seen[unique]; n++ {
			unique = fmt.Sprintf("%s (%d)", name, n)
		}
		seen[unique] = true
		headers = append(headers, unique)
	}

	if cond != nil {
		for _, name := range cond.CaptureNames() {
			accept(name)
		}
	}
	for _, source := range sources {
		for _, name := range source.Headers() {
			accept(name)
		}
	}
	return headers
}
