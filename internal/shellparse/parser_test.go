package shellparse

import "testing"

func names(t *testing.T, raw string) []string {
	t.Helper()
	frags, ok := Parse(raw)
	if !ok {
		t.Fatalf("Parse(%q) failed, want success", raw)
	}
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Executable
	}
	return out
}

func TestParseSimpleCommand(t *testing.T) {
	got := names(t, "ls -la")
	if len(got) != 1 || got[0] != "ls" {
		t.Fatalf("got %v", got)
	}
}

func TestParsePipeline(t *testing.T) {
	got := names(t, "ls -la | sort")
	if len(got) != 2 || got[0] != "ls" || got[1] != "sort" {
		t.Fatalf("got %v", got)
	}
}

func TestParseOutputRedirectFlagsTrailingFragment(t *testing.T) {
	frags, ok := Parse(`ls -la | sort > sorted.txt`)
	if !ok {
		t.Fatal("expected parse success")
	}
	if frags[1].Executable != "sort" || !frags[1].HasOutputRedirect {
		t.Fatalf("sort fragment: %+v", frags[1])
	}
	if frags[0].HasOutputRedirect {
		t.Fatalf("ls fragment should not carry the redirect: %+v", frags[0])
	}
}

func TestParseCommandSubstitutionExtractsInner(t *testing.T) {
	got := names(t, `echo $(rm -rf /)`)
	found := false
	for _, n := range got {
		if n == "rm" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected rm extracted from substitution, got %v", got)
	}
}

func TestParseForLoopRecursesBody(t *testing.T) {
	got := names(t, `for f in *.txt; do cat "$f"; done`)
	if len(got) != 1 || got[0] != "cat" {
		t.Fatalf("got %v", got)
	}
}

func TestParseFindExecTokensPreserved(t *testing.T) {
	frags, ok := Parse(`find . -name "*.py" -exec grep foo {} \; -exec wc -l {} \;`)
	if !ok {
		t.Fatal("expected parse success")
	}
	if len(frags) != 1 || frags[0].Executable != "find" {
		t.Fatalf("got %+v", frags)
	}
}

func TestParseGitConfigGlobal(t *testing.T) {
	got := names(t, `git config --global user.name "foo"`)
	if len(got) != 1 || got[0] != "git" {
		t.Fatalf("got %v", got)
	}
}

func TestParseXargsPipeline(t *testing.T) {
	got := names(t, `ls | xargs -I{} sh -c 'echo {}'`)
	if len(got) != 2 || got[0] != "ls" || got[1] != "xargs" {
		t.Fatalf("got %v", got)
	}
}

func TestParseUnknownConstructFallsThrough(t *testing.T) {
	if _, ok := Parse(`case "$x" in a) ls;; esac`); ok {
		t.Fatal("expected case statement to force fall-through")
	}
}

func TestParseArithmeticCommandFallsThrough(t *testing.T) {
	if _, ok := Parse(`((x++))`); ok {
		t.Fatal("expected arithmetic command to force fall-through")
	}
}

func TestParseArithmeticExpansionRewritten(t *testing.T) {
	got := names(t, `echo $((1+2))`)
	if len(got) != 1 || got[0] != "echo" {
		t.Fatalf("got %v", got)
	}
}

func TestParseExtendedTestRewritten(t *testing.T) {
	got := names(t, `if [[ -f foo.txt ]]; then cat foo.txt; fi`)
	if len(got) != 2 || got[0] != "true" || got[1] != "cat" {
		t.Fatalf("got %v", got)
	}
}

func TestParseLeadingTimeStripped(t *testing.T) {
	got := names(t, `time -p ls -la`)
	if len(got) != 1 || got[0] != "ls" {
		t.Fatalf("got %v", got)
	}
}

func TestParsePureAssignmentNoFragment(t *testing.T) {
	frags, ok := Parse(`FOO=bar`)
	if !ok {
		t.Fatal("expected parse success")
	}
	if len(frags) != 0 {
		t.Fatalf("got %+v, want no fragments", frags)
	}
}

func TestParseAssignmentWithSubstitutionExtractsInner(t *testing.T) {
	got := names(t, `FOO=$(rm -rf /)`)
	if len(got) != 1 || got[0] != "rm" {
		t.Fatalf("got %v", got)
	}
}

func TestParseOutputProcessSubstitutionMarksEnclosing(t *testing.T) {
	frags, ok := Parse(`tee >(cat)`)
	if !ok {
		t.Fatal("expected parse success")
	}
	var tee, cat *bool
	for i := range frags {
		f := frags[i]
		if f.Executable == "tee" {
			tee = &frags[i].HasOutputRedirect
		}
		if f.Executable == "cat" {
			v := true
			cat = &v
		}
	}
	if tee == nil || !*tee {
		t.Fatalf("expected tee fragment marked output-redirect, got %+v", frags)
	}
	if cat == nil {
		t.Fatalf("expected inner cat extracted, got %+v", frags)
	}
}

func TestParseFdDuplicationNotOutputRedirect(t *testing.T) {
	frags, ok := Parse(`ls 2>&1`)
	if !ok {
		t.Fatal("expected parse success")
	}
	if len(frags) != 1 || frags[0].HasOutputRedirect {
		t.Fatalf("got %+v, want no output redirect", frags)
	}
}
