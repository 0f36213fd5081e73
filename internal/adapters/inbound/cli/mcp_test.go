package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valorisation/coherence/internal/adapters/inbound/cli"
)

func TestMCPCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"mcp", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestMCPServeCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"mcp", "serve", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestServeCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"serve", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestServeCommand_BadServerConfig(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"serve", "--server-config", "does-not-exist.yaml"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server config")
}
