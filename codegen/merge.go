package codegen

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/wxglade/wxglade/errors"
)

var markerRe = regexp.MustCompile(`\b(begin|end) wxGlade user code: (\S+?)(?:\s*-->)?\s*$`)

// ParseRegions reads the user code regions of an existing file. It fails on
// nested, duplicate or unbalanced markers.
func ParseRegions(content string) (map[string]string, error) {
	regions := make(map[string]string)
	var (
		current string
		body    strings.Builder
		lineNo  int
	)
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		m := markerRe.FindStringSubmatch(line)
		if m == nil {
			if current != "" {
				body.WriteString(line)
				body.WriteString("\n")
			}
			continue
		}
		which, id := m[1], m[2]
		switch {
		case which == "begin" && current != "":
			return nil, errors.Newf("line %d: region %s begins inside region %s", lineNo, id, current)
		case which == "begin":
			if _, dup := regions[id]; dup {
				return nil, errors.Newf("line %d: region %s appears twice", lineNo, id)
			}
			current = id
			body.Reset()
		case current == "":
			return nil, errors.Newf("line %d: end of region %s without begin", lineNo, id)
		case id != current:
			return nil, errors.Newf("line %d: region %s ends region %s", lineNo, id, current)
		default:
			regions[id] = body.String()
			current = ""
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan existing file")
	}
	if current != "" {
		return nil, errors.Newf("region %s is not closed", current)
	}
	return regions, nil
}

// MergeResult is the outcome of merging a document with an existing file.
type MergeResult struct {
	Content string
	// Preserved lists regions whose bodies were taken from the existing file.
	Preserved []string
	// Orphaned lists non-empty regions of the existing file that the new
	// document does not contain.
	Orphaned []string
	// Found is the number of regions in the existing file.
	Found int
	// Overwritten is set when the existing markers could not be parsed.
	Overwritten bool
	// Reason explains Overwritten.
	Reason string
}

// Merge renders doc, carrying over user code regions from existing. When
// existing has broken markers, the document is rendered with default
// bodies.
func Merge(doc *Doc, n Naming, existing string) MergeResult {
	regions, err := ParseRegions(existing)
	if err != nil {
		return MergeResult{Content: doc.Render(n, nil), Overwritten: true, Reason: err.Error()}
	}

	res := MergeResult{Found: len(regions)}
	used := make(map[string]bool)
	for _, id := range doc.Regions() {
		if _, ok := regions[id]; ok {
			res.Preserved = append(res.Preserved, id)
			used[id] = true
		}
	}
	for id, body := range regions {
		if !used[id] && strings.TrimSpace(body) != "" {
			res.Orphaned = append(res.Orphaned, id)
		}
	}
	sortStrings(res.Orphaned)
	res.Content = doc.Render(n, regions)
	return res
}
