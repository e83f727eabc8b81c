// Command cfpq maintains the configuration and the result cache of the
// context-free path query engine.
//
//	cfpq config init [PATH]      write a default configuration
//	cfpq config validate         load and check the configuration
//	cfpq cache count|keys|purge  inspect or clear cached closure results
//	cfpq cache show KEY          print the triples of one cached result
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cfpq:", err)
		os.Exit(1)
	}
}
