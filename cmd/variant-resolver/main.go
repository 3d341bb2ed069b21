package main

import "github.com/oshokin/variant-resolver/cmd/variant-resolver/cmd"

func main() {
	cmd.Execute()
}
