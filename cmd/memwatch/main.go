// Command memwatch is a live terminal memory inspector.
//
// Usage:
//
//	memwatch <command> [flags]
//
// Commands:
//
//	demo      Watch a set of changing variables live
//	types     List the type tags a row can be watched as
//	version   Print version information
package main

import "github.com/Mr-Dark-debug/memwatch/internal/cli"

func main() {
	cli.Execute()
}
