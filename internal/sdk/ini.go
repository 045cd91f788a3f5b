package sdk

import (
	"bufio"
	"os"
	"strings"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

const nonNativeMarker = "+NonNativePackages="

// EnsureLine appends line to text unless a line equal to it already exists.
// The appended line is separated from existing content by exactly one newline.
func EnsureLine(text, line string) (string, bool) {
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == line {
			return text, false
		}
	}
	switch {
	case text == "":
		return line, true
	case strings.HasSuffix(text, "\n"):
		return text + line, true
	default:
		return text + "\n" + line, true
	}
}

// EnsureActiveMod makes sure the mod options INI activates mod name. It
// reports whether the file was modified.
func EnsureActiveMod(path, name string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return false, sdkerrors.IOf("ensure active mod", err, "read %s", path)
	}
	updated, changed := EnsureLine(string(data), "ActiveMods="+name)
	if !changed {
		return false, nil
	}
	if err := writePreservingMode(path, []byte(updated)); err != nil {
		return false, err
	}
	return true, nil
}

// SetKey replaces the value following the first occurrence of key (which
// includes its "=") up to the end of that line.
func SetKey(text, key, value string) (string, error) {
	idx := strings.Index(text, key)
	if idx < 0 {
		return text, sdkerrors.Validation("set ini key", key+" was not found")
	}
	start := idx + len(key)
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += start
		if end > start && text[end-1] == '\r' {
			end--
		}
	}
	return text[:start] + value + text[end:], nil
}

// SetKeyInFile applies SetKey to the file at path.
func SetKeyInFile(path, key, value string) error {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return sdkerrors.IOf("set ini key", err, "read %s", path)
	}
	updated, err := SetKey(string(data), key, value)
	if err != nil {
		return err
	}
	if updated == string(data) {
		return nil
	}
	return writePreservingMode(path, []byte(updated))
}

// DeclaresScriptPackages reports whether text has a +NonNativePackages= line.
func DeclaresScriptPackages(text string) bool {
	return strings.Contains(text, nonNativeMarker)
}

// ScriptPackages lists the names declared with +NonNativePackages= in an
// engine INI. Each name ends at a newline, ';', ' ' or '['. Without any
// declaration the fallback is the only package.
func ScriptPackages(text, fallback string) []string {
	first := strings.Index(text, nonNativeMarker)
	if first < 0 {
		return []string{fallback}
	}
	var names []string
	for _, piece := range strings.Split(text[first:], nonNativeMarker)[1:] {
		if end := strings.IndexAny(piece, "\r\n; ["); end >= 0 {
			piece = piece[:end]
		}
		if piece != "" {
			names = append(names, piece)
		}
	}
	if len(names) == 0 {
		return []string{fallback}
	}
	return names
}

// ParseKeyValues reads key=value pairs from line-oriented INI text, ignoring
// section headers and ';' comments. Keys are lower-cased; the first value
// for a key wins.
func ParseKeyValues(text string) map[string]string {
	out := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, seen := out[key]; !seen {
			out[key] = strings.TrimSpace(value)
		}
	}
	return out
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return sdkerrors.IOf("write", err, "%s", path)
	}
	return nil
}
