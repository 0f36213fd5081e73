package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valorisation/coherence/internal/adapters/inbound/cli"
	"github.com/valorisation/coherence/internal/domain"
)

const fixtureDir = "../../../../testdata/snapshots"

func fixture(name string) string {
	return filepath.Join(fixtureDir, name)
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommand_CoherentPasses(t *testing.T) {
	out, err := runCmd(t, "validate", fixture("coherent.json"), "--config", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "No inconsistencies found.")
}

func TestValidateCommand_IncoherentFails(t *testing.T) {
	out, err := runCmd(t, "validate", fixture("incoherent.json"), "--config", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 snapshot(s) inconsistent")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "732829320")
}

func TestValidateCommand_JSON(t *testing.T) {
	out, err := runCmd(t, "validate", fixture("batch.yaml"), "--json", "--config", t.TempDir())
	require.Error(t, err, "one snapshot in the batch is inconsistent")

	var reports []domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports), "output should be valid JSON")
	require.Len(t, reports, 3)
	assert.Equal(t, domain.StatusPass, reports[0].Status)
	assert.Equal(t, domain.StatusFail, reports[1].Status)
	assert.Equal(t, domain.StatusPass, reports[2].Status)
}

func TestValidateCommand_WarningsPassUnlessStrict(t *testing.T) {
	out, err := runCmd(t, "validate", fixture("warnings.json"), "--config", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "WARN")

	_, err = runCmd(t, "validate", fixture("warnings.json"), "--strict", "--config", t.TempDir())
	assert.Error(t, err)
}

func TestValidateCommand_EnglishLocale(t *testing.T) {
	out, err := runCmd(t, "validate", fixture("warnings.json"), "--locale", "en", "--json", "--config", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "compensation")
}

func TestValidateCommand_ConfigSkip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".coherence.yaml"),
		[]byte("skip:\n  - EBITDA_SUPERIEUR_CA\n"), 0644))

	out, err := runCmd(t, "validate", fixture("incoherent.json"), "--json", "--config", dir)
	require.NoError(t, err, "only warnings and infos remain")
	assert.NotContains(t, out, `"EBITDA_SUPERIEUR_CA"`)
	assert.Contains(t, out, `"MARGE_EXCESSIVE"`)
	assert.Contains(t, out, `"status": "warn"`)
}

func TestValidateCommand_Record(t *testing.T) {
	dir := t.TempDir()
	_, err := runCmd(t, "validate", fixture("coherent.json"), "--record", "--dir", dir, "--config", dir)
	require.NoError(t, err)

	out, err := runCmd(t, "history", dir, "--json")
	require.NoError(t, err)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.StatusPass, entries[0].Status)
}

func TestValidateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no files", []string{"validate"}, "requires at least 1 arg"},
		{"missing file", []string{"validate", fixture("nope.json")}, "loading snapshots"},
		{"bad siren", []string{"validate", fixture("bad_siren.json")}, "invalid snapshot"},
		{"unknown locale", []string{"validate", fixture("coherent.json"), "--locale", "de"}, "unknown locale"},
		{"bad log level", []string{"validate", fixture("coherent.json"), "--log-level", "loud"}, "parse level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, append(tt.args, "--config", t.TempDir())...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
