// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"caspiler/internal/errors"
	"caspiler/internal/irtext"
	"caspiler/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: caspiler <file.ir>")
		os.Exit(1)
	}

	path := os.Args[1]
	contracts, err := irtext.Load(path)
	if err != nil {
		color.Red("Failed to load IR: %s", err)
		os.Exit(1)
	}

	if len(contracts) == 0 {
		color.Red("%s: error: no contracts found", path)
		os.Exit(1)
	}

	for _, contract := range contracts {
		diags := &errors.Diagnostics{}
		source, err := render.Module(contract, diags)
		if err != nil {
			color.Red("Transpile failed: %s", err)
			os.Exit(1)
		}
		fmt.Println(source)
		for _, d := range diags.Items() {
			color.Yellow("warning: %s: %s", d.Code, d.Message)
		}
	}

	color.Green("✅ Successfully transpiled %s", path)
}
