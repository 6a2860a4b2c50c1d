package shellparse

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// extractor walks a parsed AST, collecting one fragment per simple-command
// invocation it can reach. failed latches true the moment it meets a node
// kind outside the recognized set; once set, no further extraction result
// is trustworthy and the caller must fall through.
type extractor struct {
	fragments []fragment.Command
	failed    bool
}

func (e *extractor) walkStmts(stmts []*syntax.Stmt, parentRedirect bool) {
	for _, s := range stmts {
		if e.failed {
			return
		}
		e.walkStmt(s, parentRedirect)
	}
}

func (e *extractor) walkStmt(s *syntax.Stmt, parentRedirect bool) {
	if s == nil || e.failed {
		return
	}
	hasOutputRedirect := parentRedirect
	for _, r := range s.Redirs {
		if isFileOutputRedirect(r) {
			hasOutputRedirect = true
		}
		if r.N != nil {
			e.scanWord(r.N)
		}
		if r.Word != nil {
			e.scanWord(r.Word)
		}
		if r.Hdoc != nil {
			e.scanWord(r.Hdoc)
		}
	}
	if s.Cmd == nil {
		return
	}
	e.walkCommand(s.Cmd, hasOutputRedirect)
}

func (e *extractor) walkCommand(cmd syntax.Command, hasOutputRedirect bool) {
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		e.walkCallExpr(c, hasOutputRedirect)
	case *syntax.BinaryCmd:
		e.walkStmt(c.X, hasOutputRedirect)
		e.walkStmt(c.Y, hasOutputRedirect)
	case *syntax.Block:
		e.walkStmts(c.Stmts, hasOutputRedirect)
	case *syntax.Subshell:
		e.walkStmts(c.Stmts, hasOutputRedirect)
	case *syntax.IfClause:
		e.walkIfClause(c, hasOutputRedirect)
	case *syntax.WhileClause:
		e.walkStmts(c.Cond, hasOutputRedirect)
		e.walkStmts(c.Do, hasOutputRedirect)
	case *syntax.ForClause:
		e.walkForClause(c, hasOutputRedirect)
	case *syntax.FuncDecl:
		e.walkStmt(c.Body, hasOutputRedirect)
	default:
		// CaseClause, ArithmCmd, TestClause, DeclClause, CoprocClause,
		// LetClause, TimeClause (left over after a rewrite miss), and any
		// future node kind all hit the default-deny rule here.
		e.failed = true
	}
}

func (e *extractor) walkIfClause(c *syntax.IfClause, hasOutputRedirect bool) {
	e.walkStmts(c.Cond, hasOutputRedirect)
	e.walkStmts(c.Then, hasOutputRedirect)
	if c.Else != nil {
		e.walkIfClause(c.Else, hasOutputRedirect)
	}
}

func (e *extractor) walkForClause(c *syntax.ForClause, hasOutputRedirect bool) {
	switch loop := c.Loop.(type) {
	case *syntax.WordIter:
		for _, w := range loop.Items {
			e.scanWord(w)
		}
	case *syntax.CStyleLoop:
		// Arithmetic init/cond/post: no executable can appear here.
	default:
		e.failed = true
		return
	}
	e.walkStmts(c.Do, hasOutputRedirect)
}

func (e *extractor) walkCallExpr(c *syntax.CallExpr, hasOutputRedirect bool) {
	for _, assign := range c.Assigns {
		if assign.Value != nil && e.scanWord(assign.Value) {
			hasOutputRedirect = true
		}
		if assign.Array != nil {
			for _, el := range assign.Array.Elems {
				if el.Value != nil && e.scanWord(el.Value) {
					hasOutputRedirect = true
				}
			}
		}
	}
	if len(c.Args) == 0 {
		// A pure assignment: no executable word, no fragment. The right-hand
		// sides were still scanned above for embedded substitutions.
		return
	}

	words := make([]string, len(c.Args))
	for i, w := range c.Args {
		if e.scanWord(w) {
			hasOutputRedirect = true
		}
		words[i] = wordString(w)
	}
	e.fragments = append(e.fragments, fragment.New(words[0], words[1:], hasOutputRedirect))
}

// scanWord recurses into every substitution reachable from w, extracting
// fragments from command and process substitutions along the way, and
// reports whether w contains an output-side process substitution (which
// marks the *enclosing* fragment, per the output-redirect rule for >(...)).
func (e *extractor) scanWord(w *syntax.Word) bool {
	if w == nil {
		return false
	}
	found := false
	for _, p := range w.Parts {
		if e.scanWordPart(p) {
			found = true
		}
	}
	return found
}

func (e *extractor) scanWordPart(p syntax.WordPart) bool {
	switch part := p.(type) {
	case *syntax.Lit, *syntax.SglQuoted:
		return false
	case *syntax.DblQuoted:
		found := false
		for _, pp := range part.Parts {
			if e.scanWordPart(pp) {
				found = true
			}
		}
		return found
	case *syntax.ParamExp:
		found := false
		if part.Exp != nil && part.Exp.Word != nil && e.scanWord(part.Exp.Word) {
			found = true
		}
		if part.Repl != nil {
			if part.Repl.Orig != nil && e.scanWord(part.Repl.Orig) {
				found = true
			}
			if part.Repl.With != nil && e.scanWord(part.Repl.With) {
				found = true
			}
		}
		return found
	case *syntax.CmdSubst:
		e.walkStmts(part.Stmts, false)
		return false
	case *syntax.ProcSubst:
		e.walkStmts(part.Stmts, false)
		return part.Op == syntax.CmdOut
	case *syntax.ExtGlob:
		return false
	default:
		// Notably *syntax.ArithmExp surviving the textual rewrite: treat as
		// an unrecognized construct rather than guess at its safety.
		e.failed = true
		return false
	}
}

// isFileOutputRedirect reports whether a redirect writes to a file path,
// as opposed to duplicating one file descriptor onto another (2>&1).
func isFileOutputRedirect(r *syntax.Redirect) bool {
	switch r.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.ClbOut, syntax.RdrAll, syntax.AppAll:
		return true
	case syntax.DplOut:
		return !isFDTarget(r.Word)
	default:
		return false
	}
}

func isFDTarget(w *syntax.Word) bool {
	if w == nil || len(w.Parts) != 1 {
		return false
	}
	lit, ok := w.Parts[0].(*syntax.Lit)
	if !ok {
		return false
	}
	v := strings.TrimSuffix(lit.Value, "-")
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// wordString renders a word back to its literal source text, the same way
// the reference security gateway's structural analyzer does it for flag
// and argument comparisons.
func wordString(w *syntax.Word) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	_ = printer.Print(&sb, w)
	return sb.String()
}
