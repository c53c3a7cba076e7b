package main

import "github.com/resolve109/solo-leveling/cmd/sl/root"

func main() {
	root.Execute()
}
