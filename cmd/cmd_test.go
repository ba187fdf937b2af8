package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fakeyudi/retrobuddy/internal/logs"
)

const twoGames = `id,ANA202404010
version,2
info,visteam,BOS
info,hometeam,ANA
start,bettm001,"Mookie Betts",0,1,8
play,1,0,bettm001,12,CBFX,S8/L
play,1,0,devea001,??,BBS,
id,ANA202404020
version,2
play,1,0,bettm001,00,,NP
`

// executeCommand runs a cobra command with the given args and captures combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

// isolate points every per-user directory at a temp dir and resets flag
// values left over from earlier commands. It returns the temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))

	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
	t.Cleanup(func() {
		logger.Close()
		logger = logs.Discard()
	})
	return tmp
}

// writeEvents writes the two-game sample into dir and returns its path.
func writeEvents(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "2024ANA.EVA")
	if err := os.WriteFile(path, []byte(twoGames), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
