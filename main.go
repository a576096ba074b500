package main

import (
	"os"

	"rwc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
