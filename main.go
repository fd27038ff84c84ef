package main

import "github.com/fleethub/fleet-management/cmd"

func main() {
	cmd.Execute()
}
