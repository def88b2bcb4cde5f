package codegen

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/wxglade/wxglade/project"
)

// FileDiff describes a generated file that differs from disk.
type FileDiff struct {
	Path    string
	Missing bool
	// Diff is a unified diff from the file on disk to the generated file.
	Diff string
}

// CheckResult is the outcome of Check.
type CheckResult struct {
	UpToDate    bool
	Result      *Result
	Differences []FileDiff
}

// Check regenerates the project in memory and compares every file with
// disk. Banner lines are ignored so a timestamp does not count as a change.
func (e *Engine) Check(p *project.Project) (*CheckResult, error) {
	res, err := e.Generate(p)
	if err != nil {
		return nil, err
	}
	out := &CheckResult{Result: res}
	for _, f := range res.Files {
		if f.Previous == nil {
			out.Differences = append(out.Differences, FileDiff{Path: f.Path, Missing: true})
			continue
		}
		before := filterBanner(f.Previous)
		after := filterBanner(f.Content)
		if before == after {
			continue
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(f.Previous)),
			B:        difflib.SplitLines(string(f.Content)),
			FromFile: f.Path,
			ToFile:   f.Path + " (generated)",
			Context:  3,
		})
		if err != nil {
			diff = "(diff failed: " + err.Error() + ")"
		}
		out.Differences = append(out.Differences, FileDiff{Path: f.Path, Diff: diff})
	}
	out.UpToDate = len(out.Differences) == 0
	return out, nil
}

// filterBanner drops the "generated by" line.
func filterBanner(content []byte) string {
	var b strings.Builder
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.Contains(line, "generated by wxGlade") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if sc.Err() != nil {
		return ""
	}
	return b.String()
}
