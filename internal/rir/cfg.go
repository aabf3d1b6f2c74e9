package rir

import "sort"

// Successors returns the block ids that block jumps to directly, i.e. the
// targets named by its terminator instruction. It scans every instruction
// rather than assuming the terminator is last, since callers may inspect a
// block mid-construction.
func Successors(block *Block) []BlockId {
	var out []BlockId
	for _, instr := range block.Instructions {
		switch instr.Op {
		case OpJump:
			out = append(out, instr.Target)
		case OpBranch:
			out = append(out, instr.Then, instr.Else)
		}
	}
	return out
}

// AllSuccessors returns every block id reachable from `start` (including
// itself), sorted ascending.
func AllSuccessors(start BlockId, p *Program) []BlockId {
	toVisit := []BlockId{start}
	visited := make(map[BlockId]bool)
	for len(toVisit) > 0 {
		id := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		block := p.GetBlock(id)
		if block == nil {
			continue
		}
		toVisit = append(toVisit, Successors(block)...)
	}
	out := make([]BlockId, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasSingleTerminator reports whether block's last instruction is a
// terminator and no earlier instruction is one too.
func HasSingleTerminator(block *Block) bool {
	if len(block.Instructions) == 0 {
		return false
	}
	for _, instr := range block.Instructions[:len(block.Instructions)-1] {
		if instr.IsTerminator() {
			return false
		}
	}
	return block.Instructions[len(block.Instructions)-1].IsTerminator()
}

// ValidateTerminators checks P1 across every block in the program and
// returns the ids of any that violate it.
func ValidateTerminators(p *Program) []BlockId {
	var bad []BlockId
	ids := make([]BlockId, 0, len(p.Blocks))
	for id := range p.Blocks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if !HasSingleTerminator(p.Blocks[id]) {
			bad = append(bad, id)
		}
	}
	return bad
}

// ValidateContiguousIds checks invariant P3: qubit/result ids must form
// contiguous prefixes [0, n) starting at 0. Since QubitId/ResultId are
// allocated monotonically by IDAllocator this always holds by
// construction; this helper exists to let tests assert it directly against
// a program's declared counts.
func ValidateContiguousIds(nAllocated, declared int) bool {
	return nAllocated == declared
}
