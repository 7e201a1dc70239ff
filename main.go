package main

import "github.com/mj1618/storeshots/cmd"

func main() {
	cmd.Execute()
}
