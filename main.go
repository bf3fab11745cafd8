package main

import "github.com/cmmoran/crudgen/cmd"

func main() {
	cmd.Execute()
}
