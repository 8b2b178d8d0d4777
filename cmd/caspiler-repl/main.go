// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"caspiler/repl"
)

func main() {
	fmt.Println("caspiler REPL: paste an IR contract block, get its CasperLabs module")
	repl.Start(os.Stdin, os.Stdout)
}
