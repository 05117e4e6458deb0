package annotate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPatternsEmptyPathYieldsDefaults(t *testing.T) {
	p, err := LoadPatterns("")
	if err != nil {
		t.Fatalf("LoadPatterns(\"\") failed: %v", err)
	}
	if !p.roleRe.MatchString("the Purchaser shall") {
		t.Fatalf("default role words must include Purchaser")
	}
}

func TestLoadPatternsOverrideMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := "role_words:\n  - Licensor\n  - Licensee\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := LoadPatterns(path)
	if err != nil {
		t.Fatalf("LoadPatterns failed: %v", err)
	}
	if !p.roleRe.MatchString("the Licensor agrees") {
		t.Fatalf("override role word not applied")
	}
	if p.roleRe.MatchString("the Buyer agrees") {
		t.Fatalf("override must replace, not extend, the role list")
	}
	// Untouched sections keep their defaults.
	if len(p.financialCues) == 0 {
		t.Fatalf("financial cues must fall back to defaults")
	}
}

func TestLoadPatternsMissingFile(t *testing.T) {
	if _, err := LoadPatterns(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
