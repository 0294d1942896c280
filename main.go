package main

import "oraflake/cmd"

func main() {
	cmd.Execute()
}
