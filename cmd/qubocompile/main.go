// cmd/qubocompile/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"qubocompile/cmd/qubocompile/commands"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	switch cmd {
	case "--help", "-h", "help":
		showUsage()
	case "--version", "-v", "version":
		fmt.Println("qubocompile " + version)
	case "build":
		if err := commands.BuildCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "analyze":
		if err := commands.AnalyzeCommand(args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		showUsage()
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println(`qubocompile - compile symbolic binary/spin expressions to a QUBO/Ising model

Usage:
  qubocompile build   -demo=<name> [-strength=5] [-feed=k=v,...]
  qubocompile analyze -demo=<name> [-strength=5] [-feed=k=v,...] [-out=dir]
  qubocompile version
  qubocompile help

Demos: binary-and, spin, placeholder, one-hot, penalty`)
}
