package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDriverImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"modernc.org/sqlite", true},
		{"github.com/jackc/pgx/v5/stdlib", true},
		{"github.com/redis/go-redis/v9", true},
		{"github.com/aws/aws-sdk-go-v2/service/s3", true},
		{"github.com/jackc/pgxfake", false},
		{"stockboard/pkg/inventory", false},
	}
	for _, c := range cases {
		if got := DriverImportForbidden(c.in); got != c.want {
			t.Fatalf("DriverImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestInternalImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"stockboard/internal/board", true},
		{"stockboard/pkg/inventory", false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.want {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func writeSource(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestAssertNoDirectImportsIgnoresTestsAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "x.go", "package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}")
	writeSource(t, dir, "x_test.go", "package tmp\nimport \"stockboard/internal/board\"\n")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeSource(t, filepath.Join(dir, "nested"), "n.go", "package nested\nimport \"stockboard/internal/board\"\n")
	AssertNoDirectImports(t, dir, InternalImportForbidden, "test files and subdirectories are skipped")
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.go", "package tmp\nimport _ \"modernc.org/sqlite\"\n")
	viols, err := directImportViolations(dir, DriverImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.Contains(viols[0], "bad.go") {
		t.Fatalf("violations = %v", viols)
	}
	if _, err := directImportViolations(filepath.Join(dir, "missing"), DriverImportForbidden); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	writeSource(t, dir, "broken.go", "package tmp\nimport (")
	if _, err := directImportViolations(dir, DriverImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) {
	r.msg = format
}

func TestFailHelpers(t *testing.T) {
	rec := &recordingFatal{}
	failIfDirectViolations(rec, "reason", nil)
	failIfTransitiveViolations(rec, "reason", nil)
	if rec.msg != "" {
		t.Fatalf("no violations should not fail")
	}
	failIfDirectViolations(rec, "reason", []string{"x"})
	if !strings.Contains(rec.msg, "direct imports") {
		t.Fatalf("unexpected message %q", rec.msg)
	}
	failIfTransitiveViolations(rec, "reason", []string{"x"})
	if !strings.Contains(rec.msg, "transitive") {
		t.Fatalf("unexpected message %q", rec.msg)
	}
}

func TestTransitiveDependencyViolations(t *testing.T) {
	old := goListDeps
	defer func() { goListDeps = old }()

	goListDeps = func(string) ([]byte, error) {
		return []byte("fmt\nmodernc.org/sqlite\n\nstockboard/pkg/inventory\n"), nil
	}
	viols, _, err := transitiveDependencyViolations("./...", DriverImportForbidden)
	if err != nil || len(viols) != 1 || viols[0] != "modernc.org/sqlite" {
		t.Fatalf("violations = %v err = %v", viols, err)
	}

	goListDeps = func(string) ([]byte, error) { return []byte("boom"), errors.New("go list failed") }
	if _, out, err := transitiveDependencyViolations("./...", DriverImportForbidden); err == nil || string(out) != "boom" {
		t.Fatalf("expected go list error")
	}
}
