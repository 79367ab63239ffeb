package main

import "github.com/mfreitez/concremix/cmd"

func main() {
	cmd.Execute()
}
