package main

import (
	"log"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("encyclopedia: %v", err)
	}
}
