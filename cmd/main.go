// cmd/main.go
package main

import cmd "github.com/mwiater/meantimes/cmd/meantimes"

// main starts the meantimes CLI by delegating to the cobra root command
// defined in the meantimes package.
func main() {
	cmd.Execute()
}
