package main

import "github.com/mmuldo/lutter/cmd"

func main() {
	cmd.Execute()
}
