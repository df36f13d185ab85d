// Command cellpop counts the cells alive on a given day of a population
// model.
package main

import "github.com/sarchlab/cellpop/cellpop/cmd"

func main() {
	cmd.Execute()
}
