package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsDevRun(t *testing.T) {
	// Test binaries end in .test, so this must hold under go test.
	if !IsDevRun() {
		t.Error("expected IsDevRun to be true under go test")
	}
}

func TestResolveStorePath(t *testing.T) {
	inTemp := filepath.Join(t.TempDir(), "kb.json")
	devRoot := filepath.Join(os.TempDir(), "wasi-dev")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{name: "Empty Uses Default", path: "", want: DefaultStorePath},
		{name: "Real Path Kept", path: "notes/kb.yaml", want: "notes/kb.yaml"},
		{name: "Temp Path Trusted", path: inTemp, forceTemp: true, want: inTemp},
		{name: "Relative Path Sandboxed", path: "notes/kb.yaml", forceTemp: true, want: filepath.Join(devRoot, "kb.yaml")},
		{name: "Default Sandboxed", path: "", forceTemp: true, want: filepath.Join(devRoot, "knowledge.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStorePath(tt.path, tt.forceTemp); got != tt.want {
				t.Errorf("ResolveStorePath(%q, %v) = %q, want %q", tt.path, tt.forceTemp, got, tt.want)
			}
		})
	}
}
