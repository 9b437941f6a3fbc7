package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCorrections(configPath, monthFlag, yearFlag string) (string, error) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)

	err := runCorrections(cmd, configPath, monthFlag, yearFlag, fixedNow)
	return stdout.String(), err
}

func TestCorrectionsEmpty(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "")

	out, err := execCorrections(configPath, "6", "2025")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded for June 2025.\n", out)
}

func TestCorrectionsAfterAllocate(t *testing.T) {
	env := setupAllocateTest(t, "")
	_, err := execAllocate(env.options(), AlwaysYes())
	require.NoError(t, err)

	out, err := execCorrections(env.configPath, "6", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "2 person(s), 2 project(s), 208h")
	assert.Contains(t, out, ivanov+": summary=200 > total=168, corrected to 168 (factor 0.8400)")

	// defaults to the current month, which has no runs
	out, err = execCorrections(env.configPath, "", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded for July 2025.")
}

func TestCorrectionsRunWithoutCorrections(t *testing.T) {
	env := setupAllocateTest(t, "")
	writeCosts(t, env.costs, map[string]map[string]int{
		petrov: {"ProjA": 8},
	}, []string{petrov}, []string{"ProjA"})
	_, err := execAllocate(env.options(), AlwaysYes())
	require.NoError(t, err)

	out, err := execCorrections(env.configPath, "6", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "no corrections")
}

func TestCorrectionsInvalidYear(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "")
	_, err := execCorrections(configPath, "6", "abc")
	assert.Error(t, err)
}
