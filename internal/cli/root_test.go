package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name()
	}

	assert.Contains(t, names, "allocate")
	assert.Contains(t, names, "journal")
	assert.Contains(t, names, "costs")
	assert.Contains(t, names, "version")
}

func TestRootUseName(t *testing.T) {
	assert.Equal(t, "costsheet", rootCmd.Use)
}

func TestRootPersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	debug := rootCmd.PersistentFlags().Lookup("debug")
	require.NotNil(t, debug)
	assert.Equal(t, "false", debug.DefValue)
}

func TestJournalSubcommands(t *testing.T) {
	var names []string
	for _, cmd := range journalCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"corrections", "forget"}, names)
}
