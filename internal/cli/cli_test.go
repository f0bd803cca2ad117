package cli

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/navstash/internal/auth"
	"github.com/MrSnakeDoc/navstash/internal/backup"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NAV_KV_BACKEND", "memory")
	t.Setenv("NAV_LOG_LEVEL", "error")
	t.Setenv("NAV_PRETTY_LOG", "false")
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "s3cret\n", "hash-password")
	if err != nil {
		t.Fatalf("hash-password error = %v", err)
	}
	if hash := strings.TrimSpace(out); !auth.IsBcryptHash(hash) {
		t.Errorf("output %q is not a bcrypt hash", hash)
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := run(t, "\n", "hash-password"); err == nil {
		t.Error("hash-password with empty input should fail")
	}
	if _, err := run(t, "", "hash-password"); err == nil {
		t.Error("hash-password without input should fail")
	}
}

func TestImportHomepageDryRun(t *testing.T) {
	memoryEnv(t)

	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	yaml := "- Developer:\n    - Github:\n        - abbr: GH\n          href: https://github.com/\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write bookmarks: %v", err)
	}

	out, err := run(t, "", "import-homepage", "--bookmarks", path, "--dry-run")
	if err != nil {
		t.Fatalf("import-homepage error = %v", err)
	}
	if !strings.Contains(out, "would add 1 categories, 1 links") {
		t.Errorf("output = %q", out)
	}
}

func TestImportHomepageRequiresFile(t *testing.T) {
	memoryEnv(t)
	if _, err := run(t, "", "import-homepage"); err == nil {
		t.Error("import-homepage without files should fail")
	}
}

func TestBackupAndRestoreCommands(t *testing.T) {
	memoryEnv(t)

	var (
		mu   sync.Mutex
		file []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			file, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			if file == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(file)
		}
	}))
	defer srv.Close()

	if _, err := run(t, "", "restore", "--url", srv.URL); err == nil {
		t.Error("restore before any backup should fail")
	}

	out, err := run(t, "", "backup", "--url", srv.URL)
	if err != nil {
		t.Fatalf("backup error = %v", err)
	}
	if !strings.Contains(out, "uploaded") || !strings.Contains(out, "0 links") {
		t.Errorf("backup output = %q", out)
	}

	t.Setenv("NAV_WEBDAV_URL", srv.URL)
	out, err = run(t, "", "restore")
	if err != nil {
		t.Fatalf("restore error = %v", err)
	}
	if !strings.Contains(out, "restored 0 links") {
		t.Errorf("restore output = %q", out)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	memoryEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hello":"world"}`))
	}))
	defer srv.Close()

	_, err := run(t, "", "restore", "--url", srv.URL)
	if !errors.Is(err, backup.ErrInvalidBackup) {
		t.Errorf("restore error = %v, want ErrInvalidBackup", err)
	}
}

func TestBadConfigIsAnError(t *testing.T) {
	t.Setenv("NAV_KV_BACKEND", "etcd")
	if _, err := run(t, "", "backup", "--url", "http://localhost"); err == nil {
		t.Error("unknown backend should surface as an error")
	}
}
