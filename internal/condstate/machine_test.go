package condstate

import "testing"

func TestIfSymbolTrueEnablesProcessing(t *testing.T) {
	m := New(nil)
	if !m.ProcessingEnabled() {
		t.Fatal("processing must start enabled")
	}
	if err := m.IfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if !m.ProcessingEnabled() {
		t.Fatal("a true IFSYMBOL must enable processing")
	}
	if err := m.EndIfSymbol(); err != nil {
		t.Fatal(err)
	}
	if m.Depth() != 0 {
		t.Fatalf("depth = %d, want 0 after EndIfSymbol", m.Depth())
	}
}

func TestIfSymbolFalseDisablesProcessing(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(false); err != nil {
		t.Fatal(err)
	}
	if m.ProcessingEnabled() {
		t.Fatal("a false IFSYMBOL must disable processing")
	}
}

func TestElseIfOnlyTakesFirstMatch(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(false); err != nil {
		t.Fatal(err)
	}
	if err := m.ElseIfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if !m.ProcessingEnabled() {
		t.Fatal("the first true ELSEIFSYMBOL must enable processing")
	}
	if err := m.ElseIfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if m.ProcessingEnabled() {
		t.Fatal("a second true ELSEIFSYMBOL must not re-enable after a branch already matched")
	}
}

func TestElseTakenOnlyWhenNoBranchMatched(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(false); err != nil {
		t.Fatal(err)
	}
	if err := m.ElseIfSymbol(false); err != nil {
		t.Fatal(err)
	}
	if err := m.Else(); err != nil {
		t.Fatal(err)
	}
	if !m.ProcessingEnabled() {
		t.Fatal("ELSE must be taken when no prior branch matched")
	}
}

func TestElseNotTakenWhenEarlierBranchMatched(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if err := m.Else(); err != nil {
		t.Fatal(err)
	}
	if m.ProcessingEnabled() {
		t.Fatal("ELSE must not be taken when the IF branch already matched")
	}
}

func TestEndIfSymbolWithoutOpenFrameFails(t *testing.T) {
	m := New(nil)
	if err := m.EndIfSymbol(); err == nil {
		t.Fatal("expected InvalidConditionalState")
	}
}

func TestNestedIfSymbolWithoutLanguageBarrierFails(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if err := m.IfSymbol(true); err == nil {
		t.Fatal("expected InvalidConditionalState for directly nested IFSYMBOL")
	}
}

func TestIfLanguageNarrowsActiveSet(t *testing.T) {
	m := New([]string{"c", "rust"})
	if !m.LangEnabled("c") || !m.LangEnabled("rust") {
		t.Fatal("both languages should start active")
	}
	if err := m.IfLanguage("c"); err != nil {
		t.Fatal(err)
	}
	if !m.LangEnabled("c") || m.LangEnabled("rust") {
		t.Fatal("IFLANGUAGE c must narrow to only c")
	}
	if err := m.EndIfLanguage(); err != nil {
		t.Fatal(err)
	}
	if !m.LangEnabled("c") || !m.LangEnabled("rust") {
		t.Fatal("ENDIFLANGUAGE must restore the prior active set")
	}
}

func TestIfLanguageElseFlipsToComplement(t *testing.T) {
	m := New([]string{"c", "rust"})
	if err := m.IfLanguage("c"); err != nil {
		t.Fatal(err)
	}
	if err := m.Else(); err != nil {
		t.Fatal(err)
	}
	if m.LangEnabled("c") || !m.LangEnabled("rust") {
		t.Fatal("ELSE within IFLANGUAGE c must enable only the complement (rust)")
	}
}

func TestIfLanguageNestsInsideIfSymbol(t *testing.T) {
	m := New([]string{"c"})
	if err := m.IfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if err := m.IfLanguage("c"); err != nil {
		t.Fatal(err)
	}
	if err := m.EndIfLanguage(); err != nil {
		t.Fatal(err)
	}
	if err := m.EndIfSymbol(); err != nil {
		t.Fatal(err)
	}
	if m.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", m.Depth())
	}
}

func TestEndIfLanguageOnSymbolFrameFails(t *testing.T) {
	m := New(nil)
	if err := m.IfSymbol(true); err != nil {
		t.Fatal(err)
	}
	if err := m.EndIfLanguage(); err == nil {
		t.Fatal("expected InvalidConditionalState for mismatched ENDIFLANGUAGE")
	}
}
