package rir

import "testing"

func buildLinearProgram() (*Program, BlockId, BlockId, BlockId, BlockId) {
	alloc := NewIDAllocator()
	p := NewProgram(alloc)
	entry := p.AddBlock()
	thenB := p.AddBlock()
	elseB := p.AddBlock()
	join := p.AddBlock()

	cond := BoolValue(true)
	entry.Instructions = append(entry.Instructions, Branch(cond, thenB.Id, elseB.Id))
	thenB.Instructions = append(thenB.Instructions, Jump(join.Id))
	elseB.Instructions = append(elseB.Instructions, Jump(join.Id))
	join.Instructions = append(join.Instructions, Return())

	return p, entry.Id, thenB.Id, elseB.Id, join.Id
}

func TestSuccessorsOfBranch(t *testing.T) {
	p, entry, thenB, elseB, _ := buildLinearProgram()
	succ := Successors(p.GetBlock(entry))
	if len(succ) != 2 || succ[0] != thenB || succ[1] != elseB {
		t.Fatalf("unexpected successors: %v", succ)
	}
}

func TestAllSuccessorsReachesJoinAndSelf(t *testing.T) {
	p, entry, thenB, elseB, join := buildLinearProgram()
	all := AllSuccessors(entry, p)
	want := []BlockId{entry, thenB, elseB, join}
	if len(all) != len(want) {
		t.Fatalf("got %v, want %v", all, want)
	}
	seen := make(map[BlockId]bool)
	for _, id := range all {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			t.Fatalf("missing block %d in %v", id, all)
		}
	}
}

func TestAllSuccessorsSorted(t *testing.T) {
	p, entry, _, _, _ := buildLinearProgram()
	all := AllSuccessors(entry, p)
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("AllSuccessors not sorted ascending: %v", all)
		}
	}
}

func TestHasSingleTerminatorP1(t *testing.T) {
	p, _, _, _, join := buildLinearProgram()
	if !HasSingleTerminator(p.GetBlock(join)) {
		t.Fatalf("join block should have exactly one terminator")
	}

	bad := &Block{Id: 99, Instructions: []Instruction{Return(), Jump(0)}}
	if HasSingleTerminator(bad) {
		t.Fatalf("block with terminator not in last position should fail P1")
	}

	empty := &Block{Id: 100}
	if HasSingleTerminator(empty) {
		t.Fatalf("empty block should fail P1")
	}
}

func TestValidateTerminatorsAcrossProgram(t *testing.T) {
	p, _, _, _, _ := buildLinearProgram()
	if bad := ValidateTerminators(p); len(bad) != 0 {
		t.Fatalf("expected no P1 violations, got %v", bad)
	}
}

func TestIDAllocatorMonotonicAndContiguous(t *testing.T) {
	a := NewIDAllocator()
	for i := 0; i < 5; i++ {
		if got := a.NextQubitId(); int(got) != i {
			t.Fatalf("qubit id %d != expected %d", got, i)
		}
	}
	if a.NQubits() != 5 {
		t.Fatalf("NQubits() = %d, want 5", a.NQubits())
	}
	if !ValidateContiguousIds(a.NQubits(), 5) {
		t.Fatalf("expected contiguous ids to validate")
	}
}

func TestVariableAndValueString(t *testing.T) {
	v := Variable{Id: 2, Type: Integer}
	if v.String() != "Variable(2, Integer)" {
		t.Fatalf("unexpected Variable string: %s", v.String())
	}
	if VarValue(v).String() != "Variable(2, Integer)" {
		t.Fatalf("unexpected Value string: %s", VarValue(v).String())
	}
	if IntValue(-1).String() != "Integer(-1)" {
		t.Fatalf("unexpected literal string: %s", IntValue(-1).String())
	}
}
