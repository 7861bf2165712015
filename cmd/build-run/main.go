// Command build-run configures, builds and runs the game executable.
package main

import "github.com/Norgate-AV/gamebuild/cmd"

func main() {
	cmd.Execute(cmd.NewRunCmd(nil))
}
