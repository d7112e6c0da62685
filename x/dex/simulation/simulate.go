package simulation

import (
	"fmt"
	"math/rand"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"
)

// Report counts executed and skipped operations by name.
type Report struct {
	OK   map[string]int
	NoOp map[string]int
}

func newReport() Report {
	return Report{OK: map[string]int{}, NoOp: map[string]int{}}
}

// Merge adds the counts of other into r.
func (r Report) Merge(other Report) {
	for n, c := range other.OK {
		r.OK[n] += c
	}
	for n, c := range other.NoOp {
		r.NoOp[n] += c
	}
}

// Total returns the number of operations the report covers.
func (r Report) Total() int {
	total := 0
	for _, c := range r.OK {
		total += c
	}
	for _, c := range r.NoOp {
		total += c
	}
	return total
}

// NewReport returns an empty report.
func NewReport() Report {
	return newReport()
}

// String renders the report with operations in name order.
func (r Report) String() string {
	names := map[string]struct{}{}
	for n := range r.OK {
		names[n] = struct{}{}
	}
	for n := range r.NoOp {
		names[n] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	out := ""
	for _, n := range sorted {
		out += fmt.Sprintf("%-18s ok=%d noop=%d\n", n, r.OK[n], r.NoOp[n])
	}
	return out
}

// Run executes numOps randomly selected operations. After every operation
// the invariant, when non-nil, is checked and a violation stops the run.
func Run(
	r *rand.Rand,
	ctx sdk.Context,
	ops []WeightedOperation,
	accs []simtypes.Account,
	numOps int,
	invariant sdk.Invariant,
) (Report, error) {
	report := newReport()
	for i := 0; i < numOps; i++ {
		op := SelectOperation(r, ops)
		if op == nil {
			return report, fmt.Errorf("no operations with positive weight")
		}

		msg, err := op(r, ctx, accs)
		if err != nil {
			return report, fmt.Errorf("operation %d (%s): %w", i, msg.Name, err)
		}
		if msg.OK {
			report.OK[msg.Name]++
		} else {
			report.NoOp[msg.Name]++
		}

		if invariant != nil {
			if res, broken := invariant(ctx); broken {
				return report, fmt.Errorf("invariant broken after operation %d (%s):\n%s", i, msg.Name, res)
			}
		}
	}
	return report, nil
}
