package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"sdlc/internal/value"
)

// langTarget is one parsed --lang=name[=file] flag occurrence.
type langTarget struct {
	name string
	file string // "" means write to stdout
}

// parseLangFlags splits each --lang value on its first '='. At least one
// entry is required (spec.md §6 "--lang=name[=file] (repeatable, at least
// one required)").
func parseLangFlags(raw []string) ([]langTarget, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --lang=name[=file] is required")
	}
	seen := make(map[string]bool, len(raw))
	out := make([]langTarget, 0, len(raw))
	for _, r := range raw {
		name, file, _ := strings.Cut(r, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("--lang value %q is missing a language name", r)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate --lang=%s", name)
		}
		seen[name] = true
		out = append(out, langTarget{name: name, file: strings.TrimSpace(file)})
	}
	return out, nil
}

// symbolDef is one parsed --symbol name=value flag occurrence.
type symbolDef struct {
	name string
	val  value.Value
}

// parseSymbolFlags splits each --symbol value on its first '=' and
// classifies the right-hand side as numeric or string (spec.md §3 Value
// model): an integer literal (decimal, or with a 0x/0o/0b prefix) parses
// as a numeric condition value, anything else is kept as its literal text.
func parseSymbolFlags(raw []string) ([]symbolDef, error) {
	out := make([]symbolDef, 0, len(raw))
	for _, r := range raw {
		name, rhs, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("--symbol value %q must be name=value", r)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("--symbol value %q is missing a name", r)
		}
		rhs = strings.TrimSpace(rhs)
		var v value.Value
		if n, err := strconv.ParseInt(rhs, 0, 64); err == nil {
			v = value.NewNumeric(n, n >= 0, value.RadixDecimal, 4)
		} else {
			v = value.NewString(rhs)
		}
		out = append(out, symbolDef{name: name, val: v})
	}
	return out, nil
}

// resolveAlign applies --align, falling back to --b32/--b64's implied
// longword width (spec.md REDESIGN/original_source opensdl_main.c "-b32|
// -b64 the number of bits that represent a longword") when --align was not
// given explicitly, and finally the project manifest's [build] default.
func resolveAlign(alignFlag int, alignSet, b32, b64 bool, manifestAlign int) (int, error) {
	switch alignFlag {
	case 0, 1, 2, 4, 8:
	default:
		return 0, fmt.Errorf("--align must be one of 0, 1, 2, 4, 8, got %d", alignFlag)
	}
	if alignSet {
		return alignFlag, nil
	}
	if b32 {
		return 4, nil
	}
	if b64 {
		return 8, nil
	}
	if manifestAlign != 0 {
		return manifestAlign, nil
	}
	return alignFlag, nil
}

// resolveSuppress validates the --suppress qualifier (spec.md §7
// InvalidQualifier / DuplicateListingQualifier bands).
func resolveSuppress(q string) (string, error) {
	switch q {
	case "", "prefix", "tag":
		return q, nil
	default:
		return "", fmt.Errorf("--suppress must be %q or %q, got %q", "prefix", "tag", q)
	}
}

// listTarget resolves the --list[=file] flag to an output path (<input>.lis
// when no file, or "-", was given), or "" when no listing was requested.
func listTarget(listFlag string, listSet bool, inputPath string) string {
	if !listSet {
		return ""
	}
	if listFlag == "" || listFlag == "-" {
		return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".lis"
	}
	return listFlag
}
