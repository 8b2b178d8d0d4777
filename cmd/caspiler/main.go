// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"caspiler/internal/errors"
	"caspiler/internal/irtext"
	"caspiler/internal/render"
)

var (
	emit         string
	optLevel     string
	target       string
	standardJSON bool
	verbose      bool
	outputDir    string
)

// jsonContract and jsonResult mirror the solidity standard-json output
// shape: {"errors": [...], "contracts": {file: {name: {...}}}}.
type jsonContract struct {
	Source string `json:"source"`
}

type jsonResult struct {
	Errors    []string                           `json:"errors"`
	Contracts map[string]map[string]jsonContract `json:"contracts"`
}

func main() {
	root := &cobra.Command{
		Use:   "caspiler INPUT...",
		Short: "Transpile resolved contract IR into CasperLabs source modules",
		Args:  cobra.MinimumNArgs(1),
		Run:   run,
	}

	root.Flags().StringVar(&emit, "emit", "casperlabs", "emit compiler state at early stage (cfg|llvm|bc|object|casperlabs)")
	root.Flags().StringVarP(&optLevel, "opt", "O", "default", "set optimizer level (none|less|default|aggressive)")
	root.Flags().StringVar(&target, "target", "substrate", "target to build for (substrate|ewasm|sabre)")
	root.Flags().BoolVar(&standardJSON, "standard-json", false, "mimic solidity json output on stdout")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "show verbose messages")
	root.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	switch emit {
	case "casperlabs":
	case "cfg", "llvm", "bc", "object":
		color.Red("error: the %s backend is not part of this build", emit)
		os.Exit(1)
	default:
		color.Red("error: unknown --emit value %q", emit)
		os.Exit(1)
	}

	result := jsonResult{Contracts: map[string]map[string]jsonContract{}}

	for _, filename := range args {
		processFilename(filename, &result)
	}

	if standardJSON {
		printStandardJSON(&result)
	}
}

func processFilename(filename string, result *jsonResult) {
	contracts, err := irtext.Load(filename)
	if err != nil {
		color.Red("error: cannot process %s: %s", filename, err)
		os.Exit(1)
	}

	if len(contracts) == 0 {
		color.Red("%s: error: no contracts found", filename)
		os.Exit(1)
	}

	jsonContracts := map[string]jsonContract{}

	for _, contract := range contracts {
		if verbose {
			fmt.Fprintf(os.Stderr, "info: transpiling contract %s from %s\n", contract.Name, filename)
		}

		diags := &errors.Diagnostics{}
		source, err := render.Module(contract, diags)
		if err != nil {
			color.Red("%s: error: %s", filename, err)
			os.Exit(1)
		}

		for _, d := range diags.Items() {
			fmt.Fprintf(os.Stderr, "%s: warning: %s: %s\n", filename, d.Code, d.Message)
		}

		switch {
		case standardJSON:
			jsonContracts[contract.Name] = jsonContract{Source: source}
		case outputDir != "":
			path := filepath.Join(outputDir, contract.Name+".rs")
			if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
				color.Red("error: cannot write %s: %s", path, err)
				os.Exit(1)
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "info: wrote %s\n", path)
			}
		default:
			fmt.Println(source)
		}
	}

	if standardJSON {
		result.Contracts[filename] = jsonContracts
	}
}

func printStandardJSON(result *jsonResult) {
	if result.Errors == nil {
		result.Errors = []string{}
	}
	out, err := json.Marshal(result)
	if err != nil {
		color.Red("error: %s", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
