package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rirc",
	Short: "RIR compiler front end",
	Long: `rirc lowers a quantum-classical hybrid program into RIR, the
resource-estimation intermediate representation: a flat control-flow
graph of classical instructions and quantum callable invocations with
no retained source structure.

It expects the syntactic tree as JSON on its input rather than parsing
source text itself - the parser is an external collaborator. rirc runs
semantic analysis, then partially evaluates everything a compile-time
pass can resolve, emitting RIR for what's left.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
