package main

import "github.com/kfdigitals/battedball/cmd"

func main() {
	cmd.Execute()
}
