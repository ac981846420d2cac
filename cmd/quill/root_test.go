package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_RegistersReplay(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"replay"})
	if err != nil {
		t.Fatalf("Find(replay) returned error: %v", err)
	}
	if cmd.Name() != "replay" {
		t.Fatalf("Find(replay) = %q", cmd.Name())
	}
	if cmd.Flags().Lookup("fast") == nil {
		t.Fatalf("replay has no --fast flag")
	}
	if root.PersistentFlags().Lookup("seed") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("root is missing persistent --seed/--config flags")
	}
}

func TestReplayCmd_RequiresScript(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"replay"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "accepts 1 arg") {
		t.Fatalf("Execute error = %v, want arg count error", err)
	}
}
