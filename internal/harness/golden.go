package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGoldenTrace compares a scenario's trace against its golden file
// under testdata/golden/<name>.golden. Regenerate with `go test -update`.
func AssertGoldenTrace(t *testing.T, name string, trace []string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(strings.Join(trace, "\n")+"\n"))
}
