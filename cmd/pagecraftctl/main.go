// Command pagecraftctl is a command-line client for the PageCraft API. The
// credential obtained by login or register is kept in a session file so
// later invocations are authenticated.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
