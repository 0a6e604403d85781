package main

import (
	"testing"
)

func TestRootCmdSetup(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil after init")
	}

	expectedUse := "attrfs"
	if rootCmd.Use != expectedUse {
		t.Errorf("expected command Use %q, got %q", expectedUse, rootCmd.Use)
	}

	for _, want := range []string{"version", "inspect"} {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s subcommand not found", want)
		}
	}
}
