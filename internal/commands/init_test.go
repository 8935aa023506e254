package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categoriesCSV "github.com/daybook-dev/daybook/internal/categories"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "daybook-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "daybook")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/daybook")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runDaybook(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir, "--name", "Alex")
	require.NoError(t, err)

	expectedDirs := []string{
		"categories",
		"recurring",
		"savings",
		"inbox",
		"queue",
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir, "--name", "Alex")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "daybook.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Alex")
	assert.Contains(t, contents, "auto_confirm: 0.9")
	assert.Contains(t, contents, "review_flag: 0.6")
}

func TestInit_Categories(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir, "--name", "Alex")
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "categories", "categories.csv"))
	require.NoError(t, err)
	defer f.Close()

	cats, err := categoriesCSV.ReadCategories(f)
	require.NoError(t, err)
	assert.Len(t, cats, 12, "default chart has 12 categories")
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir, "--name", "Alex")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init:")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Daybook <ledger@daybook.dev>")
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir, "--name", "Alex")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".daybook/", ".gitignore should cover the scan cache")
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runDaybook(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}
