// Entry point; all CLI handling lives in the Cobra commands under cmd/.

package main

import "github.com/edusched/roomalloc/cmd"

func main() {
	cmd.Execute()
}
