package main

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestRunMissingAssets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagConfig = ""
	flagAssets = t.TempDir()
	flagNoScores = true
	t.Cleanup(func() {
		flagAssets = ""
		flagNoScores = false
	})

	err := run(rootCmd, nil)
	if err == nil {
		t.Fatal("run() should fail without avatar and tile images")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should wrap fs.ErrNotExist", err)
	}

	var out bytes.Buffer
	reportError(&out, err)
	got := out.String()
	if !strings.HasPrefix(got, "Error: failed to load ") {
		t.Errorf("reportError() = %q, expected an \"Error: failed to load\" line", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("reportError() = %q should end with a newline", got)
	}
}
