package envutil

import (
	"strings"
	"testing"
)

func TestToolEnvironment_Allowlist(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	t.Setenv("HOME", "/home/dev")
	t.Setenv("LD_PRELOAD", "/tmp/evil.so")
	t.Setenv("BASH_ENV", "/tmp/evil.sh")

	env := ToolEnvironment()

	if env["PATH"] != "/usr/bin" {
		t.Errorf("Expected PATH passthrough, got %q", env["PATH"])
	}
	if env["HOME"] != "/home/dev" {
		t.Errorf("Expected HOME passthrough, got %q", env["HOME"])
	}
	if _, ok := env["LD_PRELOAD"]; ok {
		t.Error("Expected LD_PRELOAD to be dropped")
	}
	if _, ok := env["BASH_ENV"]; ok {
		t.Error("Expected BASH_ENV to be dropped")
	}
}

func TestToolEnvironment_LocaleDefaults(t *testing.T) {
	t.Setenv("LANG", "")
	t.Setenv("LC_ALL", "")

	env := ToolEnvironment()

	if env["LANG"] != "C.UTF-8" {
		t.Errorf("Expected LANG default C.UTF-8, got %q", env["LANG"])
	}
	if env["LC_ALL"] != "C.UTF-8" {
		t.Errorf("Expected LC_ALL default C.UTF-8, got %q", env["LC_ALL"])
	}
}

func TestMerge_OverridesTakePrecedence(t *testing.T) {
	base := map[string]string{"A": "1", "B": "2"}
	override := map[string]string{"B": "20", "C": "30"}

	merged := Merge(base, override)

	if merged["A"] != "1" || merged["B"] != "20" || merged["C"] != "30" {
		t.Errorf("Unexpected merge result: %v", merged)
	}
}

func TestBuild_SortedKeyValueForm(t *testing.T) {
	env := Build(map[string]string{"Z": "last", "A": "first"})

	if len(env) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(env))
	}
	if env[0] != "A=first" || env[1] != "Z=last" {
		t.Errorf("Expected sorted KEY=value entries, got %v", env)
	}
	for _, e := range env {
		if !strings.Contains(e, "=") {
			t.Errorf("Entry %q is not KEY=value form", e)
		}
	}
}
