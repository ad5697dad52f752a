package main

import (
	"github.com/NVIDIA/osw-analyzer/pkg/cli"
)

func main() {
	cli.Execute()
}
