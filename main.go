package main

import (
	"os"

	"vault-raft-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
