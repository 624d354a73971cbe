package main

import (
	"github.com/LucasPMagno/induction-shrink-fit/cmd"
)

func main() {
	cmd.Execute()
}
