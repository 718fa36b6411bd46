// Package main is the entry point for the mail-tray agent and CLI.
package main

import (
	"log"
	"os"

	"github.com/mail-sync/mail-tray/internal/cli"
)

func main() {
	log.SetPrefix("[mail-tray] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
