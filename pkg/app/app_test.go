package app

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gonewx/pigeondash/pkg/embedded"
)

// useRepoData 以仓库根目录作为嵌入文件系统（与 embed.go 嵌入的内容一致）
func useRepoData(t *testing.T) {
	t.Helper()
	embedded.Init(os.DirFS(filepath.Join("..", "..")))
	t.Cleanup(func() { embedded.Init(nil) })
}

func TestLoadGameConfigEmbedded(t *testing.T) {
	useRepoData(t)

	cfg, err := LoadGameConfig("")
	if err != nil {
		t.Fatalf("LoadGameConfig(\"\") error = %v", err)
	}
	if cfg.PlayerRadius <= 0 {
		t.Errorf("PlayerRadius = %v, want > 0", cfg.PlayerRadius)
	}
}

func TestLoadGameConfigFromFile(t *testing.T) {
	useRepoData(t)

	path := filepath.Join(t.TempDir(), "tuned.yaml")
	if err := os.WriteFile(path, []byte("dash_speed: 1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig(%q) error = %v", path, err)
	}
	if cfg.DashSpeed != 1234 {
		t.Errorf("DashSpeed = %v, want 1234", cfg.DashSpeed)
	}

	if _, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestLoadLevel(t *testing.T) {
	useRepoData(t)

	tests := []struct {
		name     string
		level    string
		wantName string
		wantErr  bool
	}{
		{"empty uses default", "", "open-sky", false},
		{"default", DefaultLevel, "open-sky", false},
		{"embedded by name", "gauntlet", "gauntlet", false},
		{"file path", filepath.Join("..", "..", "data", "levels", "duel.yaml"), "duel", false},
		{"unknown", "no-such-level", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := LoadLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if !tt.wantErr && level.Name != tt.wantName {
				t.Errorf("LoadLevel(%q).Name = %q, want %q", tt.level, level.Name, tt.wantName)
			}
		})
	}
}

func TestAvailableLevels(t *testing.T) {
	useRepoData(t)

	levels := AvailableLevels()
	for _, want := range []string{DefaultLevel, "duel", "gauntlet"} {
		if !slices.Contains(levels, want) {
			t.Errorf("AvailableLevels() = %v, missing %q", levels, want)
		}
	}
	if levels[0] != DefaultLevel {
		t.Errorf("AvailableLevels()[0] = %q, want %q", levels[0], DefaultLevel)
	}
}
