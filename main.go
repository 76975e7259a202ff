package main

import (
	"os"

	"imgproc/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
