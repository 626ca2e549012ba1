// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command procmanage launches a child process over pipes, relays its
// standard streams and exits with the child's status.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
