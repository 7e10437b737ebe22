// Command sapp-library administers the lending and inventory data of a library and serves its reporting API.
package main

import (
	"os"
)

func main() {
	if err := newCLI().Execute(); err != nil {
		os.Exit(1)
	}
}
