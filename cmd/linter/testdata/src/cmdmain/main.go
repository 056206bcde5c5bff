package main

import "os"

func main() {
	if len(os.Args) > 3 {
		os.Exit(1)
	}
	run()
}

func run() {
	os.Exit(2) // want "found usage of os.Exit outside of main function"
}
