package attr_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/attrfs/pkg/attrfs/attr"
	"github.com/arthur-debert/attrfs/pkg/attrfs/node"
)

// testClock is a fixed clock so default timestamps are predictable.
var testTime = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testTime }

// newTestRegistry composes the four standard providers with a fixed clock.
func newTestRegistry(t *testing.T) *attr.Registry {
	t.Helper()
	registry, err := attr.NewRegistry(zerolog.Nop(),
		attr.NewBasicProvider(testClock),
		attr.NewOwnerProvider(),
		attr.NewPosixProvider(),
		attr.NewDosProvider(),
	)
	require.NoError(t, err)
	return registry
}

// newTestNode returns a node seeded the way file creation seeds it.
func newTestNode(t *testing.T, registry *attr.Registry) *node.MemNode {
	t.Helper()
	defaults, err := registry.Defaults(nil)
	require.NoError(t, err)
	n := node.NewMemNode()
	n.SeedAttributes(defaults)
	return n
}

// fixedLookup resolves to the same node on every call.
func fixedLookup(n node.Node) node.Lookup {
	return func() (node.Node, error) { return n, nil }
}
