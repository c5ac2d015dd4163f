// Command s3helper runs S3 helper operations from the command line.
package main

import (
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
