package main

import "github.com/bitesuae/bitesdata/cmd"

func main() {
	cmd.Execute()
}
