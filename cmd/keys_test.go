package cmd

import (
	"strings"
	"testing"
)

func TestKeysListsEveryTable(t *testing.T) {
	isolate(t)
	out, err := executeCommand(rootCmd, "keys")
	if err != nil {
		t.Fatalf("keys: %v\n%s", err, out)
	}
	for _, want := range []string{"Any mode", "PITCH", "RESULT", "DETAIL: out type", "Stolen base", "next incomplete", "no key conflicts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
