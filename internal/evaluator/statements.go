package evaluator

import (
	"github.com/cwbudde/go-jsvm/internal/ast"
	"github.com/cwbudde/go-jsvm/internal/errors"
	"github.com/cwbudde/go-jsvm/internal/object"
)

// evalStatements implements spec.md §4.3's block composition rule: the
// first non-normal completion propagates immediately; a normal completion
// carries forward the last value actually produced, skipping over
// "empty" statements (var, function declarations, bare semicolons) that
// produce none.
func (e *Evaluator) evalStatements(scope *Scope, this object.Value, list []ast.Statement) Completion {
	result := empty()
	for _, stmt := range list {
		c := e.evalStatement(scope, this, stmt)
		if c.Kind != CompletionNormal {
			return c
		}
		if c.HasValue {
			result = c
		}
	}
	return result
}

func (e *Evaluator) evalStatement(scope *Scope, this object.Value, stmt ast.Statement) Completion {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return e.evalStatements(scope, this, s.Body)

	case *ast.VarStatement:
		for _, d := range s.Decls {
			if d.Init == nil {
				continue
			}
			v, c := e.evalExpressionValue(scope, this, d.Init)
			if c.Kind != CompletionNormal {
				return c
			}
			ref := scope.Resolve(d.Name)
			if thr := e.PutValue(ref, v); thr != nil {
				return e.completionFromThrow(s.Range, thr)
			}
		}
		return empty()

	case *ast.ExpressionStatement:
		v, c := e.evalExpressionValue(scope, this, s.Expr)
		if c.Kind != CompletionNormal {
			return c
		}
		return normal(v)

	case *ast.EmptyStatement:
		return empty()

	case *ast.IfStatement:
		t, c := e.evalExpressionValue(scope, this, s.Test)
		if c.Kind != CompletionNormal {
			return c
		}
		if object.ToBoolean(t) {
			return e.evalStatement(scope, this, s.Cons)
		}
		if s.Alt != nil {
			return e.evalStatement(scope, this, s.Alt)
		}
		return empty()

	case *ast.ForStatement:
		return e.evalFor(scope, this, s, nil)
	case *ast.ForInStatement:
		return e.evalForIn(scope, this, s, nil)
	case *ast.WhileStatement:
		return e.evalWhile(scope, this, s, nil)
	case *ast.DoWhileStatement:
		return e.evalDoWhile(scope, this, s, nil)
	case *ast.SwitchStatement:
		return e.evalSwitch(scope, this, s, nil)

	case *ast.BreakStatement:
		return Completion{Kind: CompletionBreak, Target: s.Label}
	case *ast.ContinueStatement:
		return Completion{Kind: CompletionContinue, Target: s.Label}

	case *ast.ReturnStatement:
		v := object.Undefined
		if s.Value != nil {
			rv, c := e.evalExpressionValue(scope, this, s.Value)
			if c.Kind != CompletionNormal {
				return c
			}
			v = rv
		}
		return Completion{Kind: CompletionReturn, Value: v}

	case *ast.WithStatement:
		return e.evalWith(scope, this, s)

	case *ast.ThrowStatement:
		v, c := e.evalExpressionValue(scope, this, s.Value)
		if c.Kind != CompletionNormal {
			return c
		}
		return e.throwValue(s.Range, v)

	case *ast.TryStatement:
		return e.evalTry(scope, this, s)

	case *ast.LabeledStatement:
		labels, inner := collectLabels(s)
		return e.evalLabeledBody(scope, this, labels, inner)

	case *ast.DebuggerStatement:
		return empty()

	case *ast.FunctionDeclaration:
		// Already bound onto the activation during hoisting; revisiting
		// the declaration at statement position is a no-op.
		return empty()
	}
	return empty()
}

func labelMatches(target string, labels []string) bool {
	if target == "" {
		return true
	}
	for _, l := range labels {
		if l == target {
			return true
		}
	}
	return false
}

// collectLabels unwraps `a: b: stmt` into (["a","b"], stmt) so a run of
// labels attached directly to one loop/switch all apply to it.
func collectLabels(s *ast.LabeledStatement) ([]string, ast.Statement) {
	labels := []string{s.Label}
	body := s.Body
	for {
		ls, ok := body.(*ast.LabeledStatement)
		if !ok {
			break
		}
		labels = append(labels, ls.Label)
		body = ls.Body
	}
	return labels, body
}

func (e *Evaluator) evalLabeledBody(scope *Scope, this object.Value, labels []string, inner ast.Statement) Completion {
	var c Completion
	switch s := inner.(type) {
	case *ast.ForStatement:
		c = e.evalFor(scope, this, s, labels)
	case *ast.ForInStatement:
		c = e.evalForIn(scope, this, s, labels)
	case *ast.WhileStatement:
		c = e.evalWhile(scope, this, s, labels)
	case *ast.DoWhileStatement:
		c = e.evalDoWhile(scope, this, s, labels)
	case *ast.SwitchStatement:
		c = e.evalSwitch(scope, this, s, labels)
	default:
		c = e.evalStatement(scope, this, inner)
	}
	if c.Kind == CompletionBreak && labelMatches(c.Target, labels) {
		return empty()
	}
	return c
}

func (e *Evaluator) evalFor(scope *Scope, this object.Value, s *ast.ForStatement, labels []string) Completion {
	if s.Init != nil {
		c := e.evalStatement(scope, this, s.Init)
		if c.Kind == CompletionThrow {
			return c
		}
	}
	result := empty()
	for {
		if s.Test != nil {
			tv, c := e.evalExpressionValue(scope, this, s.Test)
			if c.Kind == CompletionThrow {
				return c
			}
			if !object.ToBoolean(tv) {
				break
			}
		}
		bc := e.evalStatement(scope, this, s.Body)
		switch bc.Kind {
		case CompletionBreak:
			if labelMatches(bc.Target, labels) {
				return result
			}
			return bc
		case CompletionContinue:
			if !labelMatches(bc.Target, labels) {
				return bc
			}
		case CompletionReturn, CompletionThrow:
			return bc
		default:
			if bc.HasValue {
				result = bc
			}
		}
		if s.Update != nil {
			_, c := e.evalExpressionValue(scope, this, s.Update)
			if c.Kind == CompletionThrow {
				return c
			}
		}
	}
	return result
}

func (e *Evaluator) evalWhile(scope *Scope, this object.Value, s *ast.WhileStatement, labels []string) Completion {
	result := empty()
	for {
		tv, c := e.evalExpressionValue(scope, this, s.Test)
		if c.Kind == CompletionThrow {
			return c
		}
		if !object.ToBoolean(tv) {
			break
		}
		bc := e.evalStatement(scope, this, s.Body)
		switch bc.Kind {
		case CompletionBreak:
			if labelMatches(bc.Target, labels) {
				return result
			}
			return bc
		case CompletionContinue:
			if !labelMatches(bc.Target, labels) {
				return bc
			}
		case CompletionReturn, CompletionThrow:
			return bc
		default:
			if bc.HasValue {
				result = bc
			}
		}
	}
	return result
}

func (e *Evaluator) evalDoWhile(scope *Scope, this object.Value, s *ast.DoWhileStatement, labels []string) Completion {
	result := empty()
	for {
		bc := e.evalStatement(scope, this, s.Body)
		switch bc.Kind {
		case CompletionBreak:
			if labelMatches(bc.Target, labels) {
				return result
			}
			return bc
		case CompletionContinue:
			if !labelMatches(bc.Target, labels) {
				return bc
			}
		case CompletionReturn, CompletionThrow:
			return bc
		default:
			if bc.HasValue {
				result = bc
			}
		}
		tv, c := e.evalExpressionValue(scope, this, s.Test)
		if c.Kind == CompletionThrow {
			return c
		}
		if !object.ToBoolean(tv) {
			break
		}
	}
	return result
}

func (e *Evaluator) evalForIn(scope *Scope, this object.Value, s *ast.ForInStatement, labels []string) Completion {
	ov, c := e.evalExpressionValue(scope, this, s.Object)
	if c.Kind == CompletionThrow {
		return c
	}
	if ov.IsNullOrUndefined() {
		if e.Version.ForInOnNullIsNoop() {
			return empty()
		}
		return e.throwError(s.Range, errors.TypeError, "Cannot convert undefined or null to object")
	}
	baseObj, errC := e.toObject(s.Range, ov)
	if baseObj == nil {
		return errC
	}

	if s.IsVarDecl && s.Init != nil {
		iv, c := e.evalExpressionValue(scope, this, s.Init)
		if c.Kind == CompletionThrow {
			return c
		}
		ref := scope.Resolve(s.VarName)
		if thr := e.PutValue(ref, iv); thr != nil {
			return e.completionFromThrow(s.Range, thr)
		}
	}

	result := empty()
	for _, k := range object.Enumerate(baseObj) {
		if !object.Has(baseObj, k) {
			continue // deleted by a previous iteration
		}
		var putErr *object.Throw
		if s.IsVarDecl {
			ref := scope.Resolve(s.VarName)
			putErr = e.PutValue(ref, object.Str(k))
		} else {
			ref, rc := e.evalReference(scope, this, s.Target)
			if rc.Kind == CompletionThrow {
				return rc
			}
			putErr = e.PutValue(ref, object.Str(k))
		}
		if putErr != nil {
			return e.completionFromThrow(s.Range, putErr)
		}

		bc := e.evalStatement(scope, this, s.Body)
		switch bc.Kind {
		case CompletionBreak:
			if labelMatches(bc.Target, labels) {
				return result
			}
			return bc
		case CompletionContinue:
			if !labelMatches(bc.Target, labels) {
				return bc
			}
		case CompletionReturn, CompletionThrow:
			return bc
		default:
			if bc.HasValue {
				result = bc
			}
		}
	}
	return result
}

func (e *Evaluator) evalWith(scope *Scope, this object.Value, s *ast.WithStatement) Completion {
	ov, c := e.evalExpressionValue(scope, this, s.Object)
	if c.Kind == CompletionThrow {
		return c
	}
	baseObj, errC := e.toObject(s.Range, ov)
	if baseObj == nil {
		return errC
	}
	withScope := scope.Push(baseObj)
	return e.evalStatement(withScope, this, s.Body)
}

// evalTry implements spec.md §4.3's try/catch/finally composition:
// finally always runs, and a non-normal completion from it overrides
// whatever was pending from the block or catch clause.
func (e *Evaluator) evalTry(scope *Scope, this object.Value, s *ast.TryStatement) Completion {
	result := e.evalStatements(scope, this, s.Block.Body)
	if result.Kind == CompletionThrow && s.Catch != nil {
		catchObj := object.NewObject(e.Heap, object.ClassObject, e.ObjectProto)
		object.Put(catchObj, s.Catch.Param, result.Value, object.PutOptions{})
		catchScope := scope.Push(catchObj)
		result = e.evalStatements(catchScope, this, s.Catch.Body.Body)
	}
	if s.Finally != nil {
		fc := e.evalStatements(scope, this, s.Finally.Body)
		if fc.Kind != CompletionNormal {
			return fc
		}
	}
	return result
}

func (e *Evaluator) evalSwitch(scope *Scope, this object.Value, s *ast.SwitchStatement, labels []string) Completion {
	dv, c := e.evalExpressionValue(scope, this, s.Disc)
	if c.Kind == CompletionThrow {
		return c
	}
	matchIdx, defaultIdx := -1, -1
	for i, sc := range s.Cases {
		if !sc.Test {
			defaultIdx = i
			continue
		}
		cv, c := e.evalExpressionValue(scope, this, sc.Expr)
		if c.Kind == CompletionThrow {
			return c
		}
		if strictEquals(dv, cv) {
			matchIdx = i
			break
		}
	}
	start := matchIdx
	if start == -1 {
		start = defaultIdx
	}
	if start == -1 {
		return empty()
	}
	result := empty()
	for i := start; i < len(s.Cases); i++ {
		for _, stmt := range s.Cases[i].Body {
			bc := e.evalStatement(scope, this, stmt)
			switch bc.Kind {
			case CompletionBreak:
				if labelMatches(bc.Target, labels) {
					return result
				}
				return bc
			case CompletionContinue, CompletionReturn, CompletionThrow:
				return bc
			default:
				if bc.HasValue {
					result = bc
				}
			}
		}
	}
	return result
}
