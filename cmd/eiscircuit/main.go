// Command eiscircuit parses, converts and simulates equivalent circuits
// written in Circuit Description Code.
//
//	eiscircuit parse "R(C[RW])"
//	eiscircuit simulate "R{R=10}(C{C=2e-5}[R{R=1k}W])" --points-per-decade 5
//	eiscircuit convert "R(RC)" --query '$..symbol'
//	eiscircuit --config project.yaml simulate randles
package main

import "github.com/katalvlaran/eiscircuit/internal/cli"

func main() {
	cli.Execute()
}
