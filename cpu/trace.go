package cpu

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/vcomp/internal"
)

// TRACE_CAPACITY is the number of slots in the trace log.
const TRACE_CAPACITY = 4096

// TraceEntry records one executed instruction. The meaning of Field2 and
// Field3 depends on the opcode; see String.
type TraceEntry struct {
	Iar    uint16
	Opcode Opcode
	Field2 uint16
	Field3 uint16
}

// String renders the entry as a single line of the trace dump.
func (entry TraceEntry) String() string {
	f2, f3 := entry.Field2, entry.Field3

	var text string
	switch entry.Opcode {
	case OP_LDA:
		text = fmt.Sprintf("rA <= %d", f2)
	case OP_LAA:
		text = fmt.Sprintf("rA <= ram[%d]   | (rA <= %d)", f3, f2)
	case OP_ADD:
		text = fmt.Sprintf("rA + rB   | (rB <= %d)", f2)
	case OP_SBD:
		text = fmt.Sprintf("rA - rB   | (rB <= %d)", f2)
	case OP_ADA:
		text = fmt.Sprintf("rA + rB   | (rB <= ram[%d])   | (rB <= %d)", f3, f2)
	case OP_SBA:
		text = fmt.Sprintf("rA - rB   | (rB <= ram[%d])   | (rB <= %d)", f3, f2)
	case OP_STR, OP_STD:
		text = fmt.Sprintf("ram[%d] <= %d", f3, f2)
	case OP_SSD:
		text = fmt.Sprintf("rC <= %d", f2)
	case OP_JMP:
		text = fmt.Sprintf("jump: %d", f2)
	case OP_JIZ:
		text = traceJump(f2, f3, "zero flag was true", "zero flag was false")
	case OP_JIE:
		text = traceJump(f2, f3, "carry flag was true", "carry flag was false")
	case OP_JII:
		text = traceJump(f2, f3, "input flag was true", "input flag was false")
	case OP_JBT:
		text = traceJump(f2, f3, "all selected bits were true", "one or more of the selected bits were false")
	case OP_GIN:
		text = fmt.Sprintf("ram[%d] <= %d", f2, f3)
	case OP_SOT:
		text = fmt.Sprintf("outputDevice(%d) <= %d", f2, f3)
	}

	return fmt.Sprintf("iar: %d   | %v | %s", entry.Iar, entry.Opcode, text)
}

func traceJump(jumped, target uint16, taken, skipped string) string {
	if jumped != 0 {
		return fmt.Sprintf("jump: %d   | %s", target, taken)
	}
	return "did not jump   | " + skipped
}

// TraceLog is a ring of the most recently executed instructions.
//
// Entry n is written to slot n mod TRACE_CAPACITY. The slot about to be
// written is never read back, so at most TRACE_CAPACITY-1 entries survive;
// after 4097 instructions the oldest surviving entry is instruction 2.
type TraceLog struct {
	Entries  [TRACE_CAPACITY]TraceEntry
	Count    int  // Entries recorded since the last reset.
	Overflow bool // Set once an entry has been dropped.
}

// Record appends an entry, dropping the oldest if the log is full.
func (tl *TraceLog) Record(entry TraceEntry) {
	tl.Entries[tl.Count%TRACE_CAPACITY] = entry
	tl.Count++
	if tl.Count >= TRACE_CAPACITY {
		tl.Overflow = true
	}
}

// Len returns the number of surviving entries.
func (tl *TraceLog) Len() int {
	return min(tl.Count, TRACE_CAPACITY-1)
}

// All iterates over the surviving entries, oldest first.
func (tl *TraceLog) All() iter.Seq[TraceEntry] {
	size := tl.Len()
	start := (tl.Count - size) % TRACE_CAPACITY
	end := start + size

	if end <= TRACE_CAPACITY {
		return slices.Values(tl.Entries[start:end])
	}

	return internal.IterSeqConcat(
		slices.Values(tl.Entries[start:]),
		slices.Values(tl.Entries[:end-TRACE_CAPACITY]),
	)
}

// Drain returns the surviving entries, oldest first, and empties the log.
func (tl *TraceLog) Drain() (entries []TraceEntry) {
	entries = slices.Collect(tl.All())
	tl.Reset()

	return
}

// Reset empties the log.
func (tl *TraceLog) Reset() {
	tl.Count = 0
	tl.Overflow = false
}
