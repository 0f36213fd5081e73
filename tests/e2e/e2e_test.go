package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valorisation/coherence/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "coherence-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "coherence")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/coherence")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/snapshots", name))
	return abs
}

func run(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return out.String(), errOut.String(), exitCode
}

func TestE2E_ValidateCoherent(t *testing.T) {
	out, _, code := run(t, "validate", fixturePath("coherent.json"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No inconsistencies found.")
}

func TestE2E_ValidateIncoherentExitsOne(t *testing.T) {
	out, stderr, code := run(t, "validate", fixturePath("incoherent.json"), "--json")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "validation failed")

	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Blocking)
	assert.Equal(t, domain.AlertEBITDASuperieurCA, reports[0].Alerts[0].ID)
}

func TestE2E_ValidateBatch(t *testing.T) {
	out, _, code := run(t, "validate", fixturePath("batch.yaml"), "--json", "--locale", "en")
	assert.Equal(t, 1, code)

	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Len(t, reports, 3)
}

func TestE2E_WarningsStrict(t *testing.T) {
	_, _, code := run(t, "validate", fixturePath("warnings.json"))
	assert.Equal(t, 0, code)

	_, _, code = run(t, "validate", fixturePath("warnings.json"), "--strict")
	assert.Equal(t, 1, code)
}

func TestE2E_BadSnapshot(t *testing.T) {
	_, stderr, code := run(t, "validate", fixturePath("bad_siren.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid snapshot")
}

func TestE2E_Rules(t *testing.T) {
	out, _, code := run(t, "rules", "--json")
	assert.Equal(t, 0, code)

	var rules []domain.Rule
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Len(t, rules, len(domain.ValidAlertIDs))
}

func TestE2E_RecordThenHistory(t *testing.T) {
	dir := t.TempDir()
	_, _, code := run(t, "validate", fixturePath("coherent.json"), "--record", "--dir", dir)
	require.Equal(t, 0, code)

	out, _, code := run(t, "history", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "552100554")
}

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "coherence")
}
