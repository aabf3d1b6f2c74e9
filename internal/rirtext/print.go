// Package rirtext implements the canonical RIR text form: its serialized
// form is an observable, stable wire contract, so the layout below is a
// fixed format rather than a debug-convenience dump.
package rirtext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rirlang/rirc/internal/rir"
)

// Callable renders one callable in the canonical form:
//
//	Callable:
//	    name: NAME
//	    call_type: TYPE
//	    input_type:
//	        [0]: T0
//	        [1]: T1
//	    output_type: T | <VOID>
//	    body: N | <NONE>
func Callable(c *rir.Callable) string {
	var sb strings.Builder
	sb.WriteString("Callable:\n")
	fmt.Fprintf(&sb, "    name: %s\n", c.Name)
	fmt.Fprintf(&sb, "    call_type: %s\n", c.CallType)
	if len(c.InputType) == 0 {
		sb.WriteString("    input_type: <VOID>\n")
	} else {
		sb.WriteString("    input_type:\n")
		for i, t := range c.InputType {
			fmt.Fprintf(&sb, "        [%d]: %s\n", i, t)
		}
	}
	if c.OutputType == nil {
		sb.WriteString("    output_type: <VOID>\n")
	} else {
		fmt.Fprintf(&sb, "    output_type: %s\n", *c.OutputType)
	}
	if c.Body == nil {
		sb.WriteString("    body: <NONE>")
	} else {
		fmt.Fprintf(&sb, "    body: %d", *c.Body)
	}
	return sb.String()
}

// Instruction renders a single instruction on one line (no trailing
// newline), including its debug span if present.
func Instruction(i rir.Instruction) string {
	var body string
	switch i.Op {
	case rir.OpStore:
		body = fmt.Sprintf("%s = Store %s", i.Dest, i.Operands[0])
	case rir.OpAdd:
		body = binOp(i, "Add")
	case rir.OpSub:
		body = binOp(i, "Sub")
	case rir.OpMul:
		body = binOp(i, "Mul")
	case rir.OpSdiv:
		body = binOp(i, "Sdiv")
	case rir.OpSrem:
		body = binOp(i, "Srem")
	case rir.OpShl:
		body = binOp(i, "Shl")
	case rir.OpAshr:
		body = binOp(i, "Ashr")
	case rir.OpBitwiseAnd:
		body = binOp(i, "BitwiseAnd")
	case rir.OpBitwiseOr:
		body = binOp(i, "BitwiseOr")
	case rir.OpBitwiseXor:
		body = binOp(i, "BitwiseXor")
	case rir.OpBitwiseNot:
		body = unOp(i, "BitwiseNot")
	case rir.OpFadd:
		body = binOp(i, "Fadd")
	case rir.OpFsub:
		body = binOp(i, "Fsub")
	case rir.OpFmul:
		body = binOp(i, "Fmul")
	case rir.OpFdiv:
		body = binOp(i, "Fdiv")
	case rir.OpIcmpEq:
		body = cmpOp(i, "Eq")
	case rir.OpIcmpNe:
		body = cmpOp(i, "Ne")
	case rir.OpIcmpSgt:
		body = cmpOp(i, "Sgt")
	case rir.OpIcmpSge:
		body = cmpOp(i, "Sge")
	case rir.OpIcmpSlt:
		body = cmpOp(i, "Slt")
	case rir.OpIcmpSle:
		body = cmpOp(i, "Sle")
	case rir.OpFcmp:
		body = fmt.Sprintf("%s = Fcmp %s, %s", i.Dest, i.Operands[0], i.Operands[1])
	case rir.OpLogicalNot:
		body = unOp(i, "LogicalNot")
	case rir.OpCall:
		body = callStr(i)
	case rir.OpJump:
		body = fmt.Sprintf("Jump(%d)", i.Target)
	case rir.OpBranch:
		body = fmt.Sprintf("Branch %s, %d, %d", i.Cond, i.Then, i.Else)
	case rir.OpReturn:
		body = "Return"
	default:
		body = "<unknown instruction>"
	}
	if i.HasSpan {
		body += fmt.Sprintf(" !dbg package_id=%d span=[%d-%d]", i.Span.PackageId, i.Span.Lo, i.Span.Hi)
	}
	return body
}

func binOp(i rir.Instruction, name string) string {
	return fmt.Sprintf("%s = %s %s, %s", i.Dest, name, i.Operands[0], i.Operands[1])
}

func unOp(i rir.Instruction, name string) string {
	return fmt.Sprintf("%s = %s %s", i.Dest, name, i.Operands[0])
}

func cmpOp(i rir.Instruction, cond string) string {
	return fmt.Sprintf("%s = Icmp %s, %s, %s", i.Dest, cond, i.Operands[0], i.Operands[1])
}

func callStr(i rir.Instruction) string {
	var args strings.Builder
	args.WriteString("args( ")
	for _, a := range i.Args {
		args.WriteString(a.String())
		args.WriteString(", ")
	}
	args.WriteString(")")
	if i.HasDest {
		return fmt.Sprintf("%s = Call id(%d), %s", i.Dest, i.Callable, args.String())
	}
	return fmt.Sprintf("Call id(%d), %s", i.Callable, args.String())
}

// Block renders one block as `Block N:Block:` followed by its indented
// instructions.
func Block(b *rir.Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Block %d:Block:", b.Id)
	for _, instr := range b.Instructions {
		sb.WriteString("\n    ")
		sb.WriteString(Instruction(instr))
	}
	return sb.String()
}

// Blocks renders every block in the program, in ascending id order, under a
// `Blocks:` header.
func Blocks(p *rir.Program) string {
	ids := make([]rir.BlockId, 0, len(p.Blocks))
	for id := range p.Blocks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	sb.WriteString("Blocks:")
	for _, id := range ids {
		sb.WriteString("\n")
		sb.WriteString(Block(p.Blocks[id]))
	}
	return sb.String()
}

// Program renders callables (in id order) followed by blocks (in id
// order), the canonical ordering.
func Program(p *rir.Program) string {
	ids := make([]rir.CallableId, 0, len(p.Callables))
	for id := range p.Callables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(Callable(p.Callables[id]))
		sb.WriteString("\n")
	}
	sb.WriteString(Blocks(p))
	return sb.String()
}
