package main

import (
	"testing"

	"sdlc/internal/value"
)

func TestParseLangFlagsRequiresAtLeastOne(t *testing.T) {
	if _, err := parseLangFlags(nil); err == nil {
		t.Fatal("expected an error for an empty --lang list")
	}
}

func TestParseLangFlagsSplitsNameAndFile(t *testing.T) {
	got, err := parseLangFlags([]string{"c=out.h", "go"})
	if err != nil {
		t.Fatalf("parseLangFlags: %v", err)
	}
	if len(got) != 2 || got[0].name != "c" || got[0].file != "out.h" || got[1].name != "go" || got[1].file != "" {
		t.Fatalf("unexpected targets: %+v", got)
	}
}

func TestParseLangFlagsRejectsDuplicates(t *testing.T) {
	if _, err := parseLangFlags([]string{"c=a.h", "c=b.h"}); err == nil {
		t.Fatal("expected an error for a duplicate --lang")
	}
}

func TestParseSymbolFlagsClassifiesNumericAndString(t *testing.T) {
	got, err := parseSymbolFlags([]string{"DEBUG=1", "NAME=foo"})
	if err != nil {
		t.Fatalf("parseSymbolFlags: %v", err)
	}
	if got[0].val.Kind != value.KindNumeric || got[0].val.Numeric != 1 {
		t.Fatalf("expected DEBUG to parse numeric, got %+v", got[0].val)
	}
	if got[1].val.Kind != value.KindString || got[1].val.Text != "foo" {
		t.Fatalf("expected NAME to parse as string, got %+v", got[1].val)
	}
}

func TestParseSymbolFlagsRequiresEquals(t *testing.T) {
	if _, err := parseSymbolFlags([]string{"NOEQUALS"}); err == nil {
		t.Fatal("expected an error for a --symbol missing '='")
	}
}

func TestResolveAlignRejectsInvalidValue(t *testing.T) {
	if _, err := resolveAlign(3, true, false, false, 0); err == nil {
		t.Fatal("expected an error for --align=3")
	}
}

func TestResolveAlignPrefersExplicitFlag(t *testing.T) {
	got, err := resolveAlign(8, true, false, false, 4)
	if err != nil || got != 8 {
		t.Fatalf("resolveAlign = %d, %v, want 8, nil", got, err)
	}
}

func TestResolveAlignFallsBackToB32ThenB64ThenManifest(t *testing.T) {
	if got, _ := resolveAlign(0, false, true, false, 0); got != 4 {
		t.Fatalf("--b32 should imply align 4, got %d", got)
	}
	if got, _ := resolveAlign(0, false, false, true, 0); got != 8 {
		t.Fatalf("--b64 should imply align 8, got %d", got)
	}
	if got, _ := resolveAlign(0, false, false, false, 2); got != 2 {
		t.Fatalf("manifest align should apply absent any flag, got %d", got)
	}
}

func TestResolveSuppressValidatesQualifier(t *testing.T) {
	if _, err := resolveSuppress("tag"); err != nil {
		t.Fatalf("resolveSuppress(tag): %v", err)
	}
	if _, err := resolveSuppress("bogus"); err == nil {
		t.Fatal("expected an error for an unrecognised --suppress qualifier")
	}
}

func TestListTargetDefaultsToInputStemWithLisExtension(t *testing.T) {
	got := listTarget("", true, "module.sdl")
	if got != "module.lis" {
		t.Fatalf("listTarget = %q, want %q", got, "module.lis")
	}
}

func TestListTargetHonorsExplicitPath(t *testing.T) {
	got := listTarget("out.lis", true, "module.sdl")
	if got != "out.lis" {
		t.Fatalf("listTarget = %q, want %q", got, "out.lis")
	}
}

func TestListTargetEmptyWhenNotRequested(t *testing.T) {
	if got := listTarget("", false, "module.sdl"); got != "" {
		t.Fatalf("listTarget = %q, want empty", got)
	}
}
