package vm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avm2/avm2/opcodes"
)

// profileState accumulates per-opcode dispatch counts, grounded on the
// teacher's profileState (vm/vm.go / vm/profiling.go) which does the same
// bookkeeping for the PHP Zend opcode set.
type profileState struct {
	mu     sync.Mutex
	counts map[opcodes.OpCode]int64
	total  int64
}

func newProfileState() *profileState {
	return &profileState{counts: make(map[opcodes.OpCode]int64)}
}

func (p *profileState) observe(op opcodes.OpCode) {
	p.mu.Lock()
	p.counts[op]++
	p.total++
	p.mu.Unlock()
}

// hotSpot is one entry of a GetHotSpots report.
type hotSpot struct {
	Op    opcodes.OpCode
	Count int64
}

// GetPerformanceReport renders a human-readable summary of total
// instructions dispatched and distinct opcodes seen, mirroring the
// teacher's VM.GetPerformanceReport.
func (vm *VM) GetPerformanceReport() string {
	vm.profile.mu.Lock()
	defer vm.profile.mu.Unlock()
	return fmt.Sprintf("instructions dispatched: %d, distinct opcodes: %d", vm.profile.total, len(vm.profile.counts))
}

// GetHotSpots returns the n most-frequently-dispatched opcodes, most
// frequent first.
func (vm *VM) GetHotSpots(n int) []hotSpot {
	vm.profile.mu.Lock()
	spots := make([]hotSpot, 0, len(vm.profile.counts))
	for op, count := range vm.profile.counts {
		spots = append(spots, hotSpot{Op: op, Count: count})
	}
	vm.profile.mu.Unlock()

	sort.Slice(spots, func(i, j int) bool { return spots[i].Count > spots[j].Count })
	if n > 0 && n < len(spots) {
		spots = spots[:n]
	}
	return spots
}
