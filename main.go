package main

import "github.com/projflow/projflow/cmd"

func main() {
	cmd.Execute()
}
