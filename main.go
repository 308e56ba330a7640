package main

import "erp-core/cmd"

func main() {
	cmd.Execute()
}
