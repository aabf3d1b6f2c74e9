package semantic

import (
	"github.com/rirlang/rirc/internal/diag"
	"github.com/rirlang/rirc/internal/symtab"
	"github.com/rirlang/rirc/internal/syntax"
	"github.com/rirlang/rirc/internal/tt"
	"github.com/rirlang/rirc/internal/types"
)

// resolveTypeExpr turns a syntactic type annotation into a resolved
// internal/types.Type. Array dimensions and widths must const-fold to
// non-negative integers; failures type to Err rather than aborting
// lowering.
func (a *Analyzer) resolveTypeExpr(te syntax.TypeExpr) types.Type {
	width := a.constIntWidth(te.Width)
	size := a.constIntWidth(te.Size)
	switch te.Name {
	case "bit":
		if te.Size != nil {
			return types.NewBitArray(size, false)
		}
		return types.NewBit(false)
	case "bool":
		return types.NewBool(false)
	case "int":
		return types.NewInt(widthPtr(te.Width, width), false)
	case "uint":
		return types.NewUInt(widthPtr(te.Width, width), false)
	case "float":
		return types.NewFloat(widthPtr(te.Width, width), false)
	case "angle":
		return types.NewAngle(widthPtr(te.Width, width), false)
	case "complex":
		return types.NewComplex(widthPtr(te.Width, width), false)
	case "duration":
		return types.NewDuration(false)
	case "stretch":
		return types.NewStretch(false)
	case "qubit":
		if te.Size != nil {
			return types.NewQubitArray(size)
		}
		return types.NewQubit()
	case "hwqubit":
		return types.NewHardwareQubit()
	case "void":
		return types.NewVoid()
	default:
		a.Diags.Errorf(diag.NotSupported, toDiagSpan(te.Span), "unknown type %q", te.Name)
		return types.NewErr()
	}
}

// widthPtr returns nil when the syntactic width annotation was omitted, so
// the resolved type stays unsized rather than defaulting to width w.
func widthPtr(expr syntax.Expr, w int) *int {
	if expr == nil {
		return nil
	}
	return types.WithWidth(w)
}

// constIntWidth evaluates a width/size expression, which must be a
// classical (foldable) non-negative integer. Non-const or missing
// expressions yield 0.
func (a *Analyzer) constIntWidth(e syntax.Expr) int {
	if e == nil {
		return 0
	}
	lit := a.lowerExpr(e)
	cv, ok := lit.ConstValue()
	if !ok {
		return 0
	}
	return asInt(cv)
}

func (a *Analyzer) lowerClassicalDecl(n *syntax.ClassicalDeclStmt) tt.Stmt {
	ty := a.resolveTypeExpr(n.Ty)
	var init tt.Expr
	if n.Init != nil {
		init = a.lowerExpr(n.Init)
		init = a.insertImplicitCast(init, ty, n.Init.Pos())
	}
	io := symtab.IONone
	id, err := a.Symbols.Declare(n.Name.Value, ty, declSpan(n.Name.Span), io)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	isConst := n.IsConst
	if isConst && init != nil {
		if cv, ok := init.ConstValue(); ok {
			a.Symbols.SetConstValue(id, cv)
		}
	}
	return &tt.ClassicalDecl{
		StmtBase: tt.NewStmtBase(n.Span),
		Symbol:   id,
		Ty:       ty,
		Init:     init,
		IsConst:  isConst,
	}
}

func declSpan(s syntax.Span) symtab.Span { return symtab.Span{Lo: s.Lo, Hi: s.Hi} }

func (a *Analyzer) lowerQubitDecl(n *syntax.QubitDeclStmt) tt.Stmt {
	id, err := a.Symbols.Declare(n.Name.Value, types.NewQubit(), declSpan(n.Name.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	a.qubitCounter++
	return &tt.QubitDecl{StmtBase: tt.NewStmtBase(n.Span), Symbol: id}
}

func (a *Analyzer) lowerQubitArrayDecl(n *syntax.QubitArrayDeclStmt) tt.Stmt {
	size := a.constIntWidth(n.Size)
	id, err := a.Symbols.Declare(n.Name.Value, types.NewQubitArray(size), declSpan(n.Name.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	a.qubitCounter += size
	return &tt.QubitArrayDecl{StmtBase: tt.NewStmtBase(n.Span), Symbol: id, Size: size}
}

func (a *Analyzer) lowerInputDecl(n *syntax.InputDeclStmt) tt.Stmt {
	ty := a.resolveTypeExpr(n.Ty)
	id, err := a.Symbols.Declare(n.Name.Value, ty, declSpan(n.Name.Span), symtab.IOInput)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	return &tt.InputDecl{StmtBase: tt.NewStmtBase(n.Span), Symbol: id, Ty: ty}
}

func (a *Analyzer) lowerOutputDecl(n *syntax.OutputDeclStmt) tt.Stmt {
	ty := a.resolveTypeExpr(n.Ty)
	id, err := a.Symbols.Declare(n.Name.Value, ty, declSpan(n.Name.Span), symtab.IOOutput)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	return &tt.OutputDecl{StmtBase: tt.NewStmtBase(n.Span), Symbol: id, Ty: ty}
}

func (a *Analyzer) lowerAssign(n *syntax.AssignStmt) tt.Stmt {
	ident, ok := n.Target.(*syntax.Identifier)
	if !ok {
		a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "assignment target must be a name")
		return &tt.Err{StmtBase: tt.NewStmtBase(n.Span)}
	}
	sym, err := a.Symbols.Resolve(ident.Value)
	if err != nil {
		a.Diags.Errorf(diag.Undefined, toDiagSpan(n.Span), "symbol %q is not declared", ident.Value)
		return &tt.Err{StmtBase: tt.NewStmtBase(n.Span)}
	}
	val := a.lowerExpr(n.Value)
	if n.CompoundOp != "" {
		val = a.lowerBinaryValues(n.Span, n.CompoundOp, a.lowerExpr(ident), val)
	}
	val = a.insertImplicitCast(val, sym.Type, n.Value.Pos())
	return &tt.Assign{StmtBase: tt.NewStmtBase(n.Span), Symbol: sym.ID, Value: val}
}

func (a *Analyzer) lowerIndexedAssign(n *syntax.IndexedClassicalTypeAssign) tt.Stmt {
	var base *syntax.Identifier
	var indices []syntax.Expr
	switch t := n.Target.(type) {
	case *syntax.IndexExpr:
		if id, ok := t.Base.(*syntax.Identifier); ok {
			base = id
		}
		indices = []syntax.Expr{t.Index}
	case *syntax.MultiIndexExpr:
		if id, ok := t.Base.(*syntax.Identifier); ok {
			base = id
		}
		indices = t.Indices
	}
	if base == nil {
		a.Diags.Errorf(diag.NotSupported, toDiagSpan(n.Span), "indexed assignment target must be a name")
		return &tt.Err{StmtBase: tt.NewStmtBase(n.Span)}
	}
	sym, err := a.Symbols.Resolve(base.Value)
	if err != nil {
		a.Diags.Errorf(diag.Undefined, toDiagSpan(n.Span), "symbol %q is not declared", base.Value)
		return &tt.Err{StmtBase: tt.NewStmtBase(n.Span)}
	}
	lowered := make([]tt.Expr, len(indices))
	for i, ix := range indices {
		lowered[i] = a.lowerExpr(ix)
	}
	return &tt.IndexedAssign{
		StmtBase: tt.NewStmtBase(n.Span),
		Symbol:   sym.ID,
		Indices:  lowered,
		Value:    a.lowerExpr(n.Value),
	}
}

// lowerAlias lowers `let name = e0 ++ e1 ++ ...;`. A bit-array alias across
// more than one source is not implemented.
func (a *Analyzer) lowerAlias(n *syntax.AliasStmt) tt.Stmt {
	sources := make([]tt.Expr, len(n.Sources))
	for i, s := range n.Sources {
		sources[i] = a.lowerExpr(s)
	}
	if len(sources) > 1 {
		if first := sources[0].Type(); first.Kind() == types.KindBitArray {
			a.Diags.Errorf(diag.Unimplemented, toDiagSpan(n.Span), "bit-array alias across multiple sources is not implemented")
		}
	}
	var ty types.Type = types.NewErr()
	if len(sources) > 0 {
		ty = sources[0].Type()
	}
	id, err := a.Symbols.Declare(n.Name.Value, ty, declSpan(n.Name.Span), symtab.IONone)
	if err != nil {
		a.Diags.Errorf(diag.RedeclarationInScope, toDiagSpan(n.Span), "symbol %q already declared in this scope", n.Name.Value)
	}
	return &tt.Alias{StmtBase: tt.NewStmtBase(n.Span), Symbol: id, Sources: sources}
}
