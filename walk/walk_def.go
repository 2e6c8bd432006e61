package walk

import (
	"wabbit/ast"
	"wabbit/common"
	"wabbit/types"
)

// declareTypeDef declares the name of a struct or enum definition in the
// global scope.  The fields and variants are resolved afterwards.
func (w *Walker) declareTypeDef(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.StructDef:
		sym := &common.Symbol{
			Name:    v.Name,
			DefSpan: v.Span(),
			Type:    types.NewStructType(v.Name),
			DefKind: common.DefKindStruct,
		}

		w.define(sym, v)
		v.Sym = sym
	case *ast.EnumDef:
		sym := &common.Symbol{
			Name:    v.Name,
			DefSpan: v.Span(),
			Type:    types.NewEnumType(v.Name),
			DefKind: common.DefKindEnum,
		}

		w.define(sym, v)
		v.Sym = sym
	}
}

// resolveTypeDef resolves the fields or variants of a declared type
// definition.
func (w *Walker) resolveTypeDef(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.StructDef:
		if v.Sym == nil {
			return
		}

		if len(v.Fields) == 0 {
			w.error(v, "struct `%s` must have at least one field", v.Name)
		}

		st := v.Sym.Type.(*types.StructType)
		for _, field := range v.Fields {
			ftyp := w.resolveType(field.TypeName, field)

			if !st.AddField(field.Name, ftyp) {
				w.error(field, "multiple fields named `%s` in struct `%s`", field.Name, v.Name)
			}
		}
	case *ast.EnumDef:
		if v.Sym == nil {
			return
		}

		if len(v.Variants) == 0 {
			w.error(v, "enum `%s` must have at least one variant", v.Name)
		}

		et := v.Sym.Type.(*types.EnumType)
		for _, variant := range v.Variants {
			var payload types.Type
			if variant.PayloadTypeName != "" {
				payload = w.resolveType(variant.PayloadTypeName, variant)
			}

			if !et.AddVariant(variant.Name, payload) {
				w.error(variant, "multiple variants named `%s` in enum `%s`", variant.Name, v.Name)
			}
		}
	}
}

// checkTypeDefCycles rejects a type definition which contains itself by value:
// such a type would have no finite zero value.
func (w *Walker) checkTypeDefCycles(stmt ast.Stmt) {
	var sym *common.Symbol

	switch v := stmt.(type) {
	case *ast.StructDef:
		sym = v.Sym
	case *ast.EnumDef:
		sym = v.Sym
	default:
		return
	}

	if sym == nil {
		return
	}

	if containsType(sym.Type, sym.Type.(types.NamedType).Name(), make(map[string]struct{})) {
		w.error(stmt, "type `%s` contains itself", sym.Name)
	}
}

// containsType returns whether any field or payload reachable from typ is the
// named type.
func containsType(typ types.Type, name string, visited map[string]struct{}) bool {
	var inner []types.Type

	switch v := typ.(type) {
	case *types.StructType:
		for _, field := range v.Fields {
			inner = append(inner, field.Type)
		}
	case *types.EnumType:
		for _, variant := range v.Variants {
			if variant.Payload != nil {
				inner = append(inner, variant.Payload)
			}
		}
	default:
		return false
	}

	for _, ityp := range inner {
		nt, ok := ityp.(types.NamedType)
		if !ok {
			continue
		}

		if nt.Name() == name {
			return true
		}

		if _, ok := visited[nt.Name()]; ok {
			continue
		}

		visited[nt.Name()] = struct{}{}
		if containsType(ityp, name, visited) {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// declareFuncDef registers the signature of a function definition.
func (w *Walker) declareFuncDef(stmt ast.Stmt) {
	fd, ok := stmt.(*ast.FuncDef)
	if !ok {
		return
	}

	ft := &types.FuncType{ReturnType: types.PrimTypeUnit}
	for _, param := range fd.Params {
		ptyp := w.resolveType(param.TypeName, param)
		ft.ParamTypes = append(ft.ParamTypes, ptyp)
	}

	if fd.ReturnTypeName != "" {
		ft.ReturnType = w.resolveType(fd.ReturnTypeName, fd)
	}

	if fd.Name == common.MainFuncName {
		if len(ft.ParamTypes) != 0 || !types.Equals(ft.ReturnType, types.PrimTypeInt) {
			w.error(fd, "`main` must take no parameters and return `int`")
		}
	}

	sym := &common.Symbol{
		Name:    fd.Name,
		DefSpan: fd.Span(),
		Type:    ft,
		DefKind: common.DefKindFunc,
	}

	w.define(sym, fd)
	fd.Sym = sym
}

// walkFuncBody walks the body of a function definition.
func (w *Walker) walkFuncBody(fd *ast.FuncDef) {
	// The signature failed to resolve: the error has already been reported.
	if fd.Sym == nil {
		return
	}

	ft := fd.Sym.Type.(*types.FuncType)

	// Push the enclosing scope of the function.
	w.pushScope()
	defer w.popScope()

	// Declare all parameter symbols.
	for i, param := range fd.Params {
		sym := &common.Symbol{
			Name:    param.Name,
			DefSpan: param.Span(),
			Type:    ft.ParamTypes[i],
			DefKind: common.DefKindParam,
			Mutable: true,
		}

		w.define(sym, param)
		param.Sym = sym
	}

	// Set the function return type.
	w.enclosingReturnType = ft.ReturnType

	// The body shares the function's scope with its parameters.
	cm := w.walkStmts(fd.Body.Stmts)

	// Make sure the function returns.
	if !types.IsUnit(ft.ReturnType) && cm != ControlReturn {
		if len(fd.Body.Stmts) > 0 {
			w.error(fd.Body.Stmts[len(fd.Body.Stmts)-1], "missing return statement in function `%s`", fd.Name)
		} else {
			w.error(fd, "missing return statement in function `%s`", fd.Name)
		}
	}

	// Clear the function return type.
	w.enclosingReturnType = nil
}

// resolveType resolves a written type name to its type.
func (w *Walker) resolveType(name string, node ast.ASTNode) types.Type {
	if pt, ok := types.PrimitiveByName(name); ok {
		return pt
	}

	// Type definitions only live in the global scope.
	if sym, ok := w.scopes[0][name]; ok {
		if sym.DefKind == common.DefKindStruct || sym.DefKind == common.DefKindEnum {
			return sym.Type
		}

		w.error(node, "`%s` is a %s, not a type", name, sym.KindName())
	}

	w.error(node, "unknown type: `%s`", name)
	return nil
}
