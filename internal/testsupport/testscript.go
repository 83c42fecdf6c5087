// Package testsupport provides helpers for building the tasknest binary
// and wiring it into testscript runs.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// BuildTasknest builds the tasknest binary once and returns its path.
func BuildTasknest(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tasknest-bin-")
		if err != nil {
			buildErr = err
			return
		}

		binPath = filepath.Join(binDir, "tasknest")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/tasknest")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tasknest: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return binPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASKNEST", BuildTasknest(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "share", "tasknest"), 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

type scriptEnvelope struct {
	Todos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"todos"`
	Categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

// CmdTodoID finds a todo by title in a data file and stores its ID in
// an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	envelope := readScriptEnvelope(ts, args[0])
	for _, item := range envelope.Todos {
		if item.Title == args[1] {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("todo with title %q not found", args[1])
}

// CmdCategoryID finds a category by name in a data file and stores its
// ID in an env var.
func CmdCategoryID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("catid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: catid FILE NAME VAR")
	}

	envelope := readScriptEnvelope(ts, args[0])
	for _, item := range envelope.Categories {
		if item.Name == args[1] {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("category named %q not found", args[1])
}

func readScriptEnvelope(ts *testscript.TestScript, file string) scriptEnvelope {
	var envelope scriptEnvelope
	data := ts.ReadFile(file)
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		ts.Fatalf("parse data file: %v", err)
	}
	return envelope
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
