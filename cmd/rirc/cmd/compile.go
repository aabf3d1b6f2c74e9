package cmd

import (
	"fmt"
	"os"

	"github.com/rirlang/rirc/internal/config"
	"github.com/rirlang/rirc/internal/partialeval"
	"github.com/rirlang/rirc/internal/rir"
	"github.com/rirlang/rirc/internal/rirtext"
	"github.com/rirlang/rirc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	configPath      string
	sourcePath      string
	outputPath      string
	operationName   string
	outputSemantics string
	qubitSemantics  string
	programType     string
	emitJSON        bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [tree.json]",
	Short: "Lower a syntax-tree JSON file to RIR",
	Long: `Compile reads a syntactic tree serialized as JSON (the shape an
external parser would hand rirc), runs semantic analysis over it, and
partially evaluates the result into RIR, printed in its canonical text
form.

Examples:
  # Compile with default options
  rirc compile program.json

  # Compile with a YAML config file
  rirc compile program.json --config rirc.yaml

  # Override one option from the command line
  rirc compile program.json --output-semantics Qiskit`,
	Args: cobra.ExactArgs(1),
	RunE: compileTree,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&configPath, "config", "", "YAML file of compiler options (default: built-in defaults)")
	compileCmd.Flags().StringVar(&sourcePath, "source", "", "original source text, used only to annotate diagnostics with a source line")
	compileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&operationName, "operation-name", "", "override operation_name")
	compileCmd.Flags().StringVar(&outputSemantics, "output-semantics", "", "override output_semantics (OpenQasm|Qiskit|ResourceEstimation)")
	compileCmd.Flags().StringVar(&qubitSemantics, "qubit-semantics", "", "override qubit_semantics (Managed|Unmanaged)")
	compileCmd.Flags().StringVar(&programType, "program-ty", "", "override program_ty (File|Operation|Fragments)")
	compileCmd.Flags().BoolVar(&emitJSON, "json", false, "emit the RIR data model as JSON instead of canonical text (for `rirc inspect`)")
}

func compileTree(_ *cobra.Command, args []string) error {
	inputPath := args[0]

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s (program_ty=%s, output_semantics=%s, qubit_semantics=%s)...\n",
			inputPath, opts.ProgramType, opts.OutputSemantics, opts.QubitSemantics)
	}

	data, err := readSourceJSON(inputPath)
	if err != nil {
		return err
	}
	prog, err := decodeProgram(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	var sourceText string
	if sourcePath != "" {
		raw, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", sourcePath, err)
		}
		sourceText = string(raw)
	}

	analyzer := semantic.New(semantic.Config{
		QubitSemantics:  string(opts.QubitSemantics),
		OutputSemantics: string(opts.OutputSemantics),
	})
	typed := analyzer.Lower(prog)

	if analyzer.Diags.HasErrors() {
		for _, d := range analyzer.Diags.Items() {
			fmt.Fprintln(os.Stderr, d.Format(sourceText, false))
		}
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(analyzer.Diags.Items()))
	}

	driver := partialeval.NewDriver(analyzer.Symbols)
	driver.Cfg = partialeval.Config{
		OperationName:  opts.OperationName,
		QubitSemantics: string(opts.QubitSemantics),
	}

	rirProg, err := driver.Compile(typed)
	if err != nil {
		return fmt.Errorf("lowering to RIR failed: %w", err)
	}

	var text string
	if emitJSON {
		data, err := rir.ToJSON(rirProg)
		if err != nil {
			return fmt.Errorf("encoding RIR as JSON: %w", err)
		}
		text = string(data)
	} else {
		text = rirtext.Program(rirProg)
	}

	if outputPath == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "RIR written to %s\n", outputPath)
	} else {
		fmt.Printf("Compiled %s -> %s\n", inputPath, outputPath)
	}
	return nil
}

// loadOptions builds the effective config.Options for one invocation: a
// --config file (or the built-in defaults if none was given), with any
// of the single-option flags applied on top.
func loadOptions() (config.Options, error) {
	opts := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Options{}, err
		}
		opts = loaded
	}

	if operationName != "" {
		opts.OperationName = operationName
	}
	if outputSemantics != "" {
		opts.OutputSemantics = config.OutputSemantics(outputSemantics)
	}
	if qubitSemantics != "" {
		opts.QubitSemantics = config.QubitSemantics(qubitSemantics)
	}
	if programType != "" {
		opts.ProgramType = config.ProgramType(programType)
	}

	if err := opts.Validate(); err != nil {
		return config.Options{}, err
	}
	return opts, nil
}
