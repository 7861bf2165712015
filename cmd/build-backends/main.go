// Command build-backends builds the selected backend targets of a configured
// build tree.
package main

import "github.com/Norgate-AV/gamebuild/cmd"

func main() {
	cmd.Execute(cmd.NewBackendsCmd(nil))
}
