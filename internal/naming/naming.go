// Package naming builds proposed names from simple edit steps and flags
// proposals that are likely to fail.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

type Op string

const (
	OpRemoveText      Op = "Remove text"
	OpReplaceText     Op = "Replace text"
	OpInsertBeforeExt Op = "Insert before extension"
	OpChangeExt       Op = "Change extension"
	OpAppend          Op = "Append"
	OpPrepend         Op = "Prepend"
)

// Ops lists the operations in display order.
var Ops = []Op{OpRemoveText, OpReplaceText, OpInsertBeforeExt, OpChangeExt, OpAppend, OpPrepend}

// Step is one edit. B is only used by OpReplaceText.
type Step struct {
	Op Op
	A  string
	B  string
}

// Apply runs steps over name in order.
func Apply(name string, steps []Step) string {
	if len(steps) == 0 {
		return name
	}

	for _, s := range steps {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)

		switch s.Op {
		case OpRemoveText:
			if s.A != "" {
				name = strings.ReplaceAll(name, s.A, "")
			}
		case OpReplaceText:
			if s.A != "" {
				name = strings.ReplaceAll(name, s.A, s.B)
			}
		case OpInsertBeforeExt, OpAppend:
			name = base + s.A + ext
		case OpPrepend:
			name = s.A + base + ext
		case OpChangeExt:
			newExt := strings.TrimSpace(s.A)
			switch {
			case newExt == "":
				name = base
			case strings.HasPrefix(newExt, "."):
				name = base + newExt
			default:
				name = base + "." + newExt
			}
		}
	}

	return strings.TrimSpace(name)
}

// Generate applies steps to every name.
// Lines splits text typed or pasted as one name per line. Blank lines
// around the block are dropped, so a trailing newline is not an empty
// name; blank lines inside it are kept and fail validation. Blank text
// yields nil.
func Lines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

func Generate(names []string, steps []Step) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Apply(n, steps)
	}
	return out
}

var reserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidReason returns why name cannot be used as an entry name on common
// platforms, or "" when it looks fine.
func InvalidReason(name string) string {
	trim := strings.TrimSpace(name)
	if trim == "" {
		return "empty name"
	}
	if trim == "." || trim == ".." {
		return "reserved filename"
	}
	if strings.ContainsAny(trim, `<>:"/\|?*`) {
		return "invalid characters"
	}
	base := strings.TrimSuffix(trim, filepath.Ext(trim))
	if reserved[strings.ToUpper(base)] {
		return "reserved filename"
	}
	return ""
}

// Preview is one proposed rename with an optional warning.
type Preview struct {
	Old     string
	New     string
	Warning string
}

// Check pairs oldNames with newNames by position and warns about invalid
// names, duplicates inside the batch and targets already on disk. Pairs
// beyond the shorter list are reported with an empty side.
func Check(afs afero.Fs, dir string, oldNames, newNames []string) []Preview {
	n := max(len(oldNames), len(newNames))

	renamed := make(map[string]bool, len(oldNames))
	for _, o := range oldNames {
		renamed[o] = true
	}
	counts := make(map[string]int, len(newNames))
	for _, nn := range newNames {
		counts[strings.TrimSpace(nn)]++
	}

	out := make([]Preview, n)
	for i := range n {
		var p Preview
		if i < len(oldNames) {
			p.Old = oldNames[i]
		}
		if i < len(newNames) {
			p.New = strings.TrimSpace(newNames[i])
		}

		switch {
		case p.Old == "":
			p.Warning = "no matching item"
		case p.New == "":
			p.Warning = "missing new name"
		case p.New == p.Old:
			p.Warning = "unchanged"
		case InvalidReason(p.New) != "":
			p.Warning = InvalidReason(p.New)
		case counts[p.New] > 1:
			p.Warning = "conflict"
		case !renamed[p.New] && targetExists(afs, dir, p.New):
			p.Warning = "target exists"
		}
		out[i] = p
	}
	return out
}

func targetExists(afs afero.Fs, dir, name string) bool {
	ok, err := afero.Exists(afs, filepath.Join(dir, name))
	return err == nil && ok
}
