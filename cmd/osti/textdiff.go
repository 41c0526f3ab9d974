package main

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders a line-oriented diff of from and to, prefixing removed
// lines with "-" and added lines with "+". Runs of unchanged lines longer
// than 2*context are elided. It returns "" when the texts are equal.
func lineDiff(from, to string, context int, p palette) string {
	if from == to {
		return ""
	}
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			for _, l := range ls {
				sb.WriteString(p.del("-%s", l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffInsert:
			for _, l := range ls {
				sb.WriteString(p.add("+%s", l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffEqual:
			head, tail := context, context
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(ls) <= head+tail {
				writeContext(&sb, ls)
				continue
			}
			writeContext(&sb, ls[:head])
			sb.WriteString("...\n")
			writeContext(&sb, ls[len(ls)-tail:])
		}
	}
	return sb.String()
}

func writeContext(sb *strings.Builder, ls []string) {
	for _, l := range ls {
		sb.WriteString(" " + l + "\n")
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
