package main

import (
	"github.com/nvcollection/nvcx/cmd"
)

func main() {
	cmd.Execute()
}
