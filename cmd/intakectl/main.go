// intakectl administers a client intake deployment: schema setup and login accounts.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
