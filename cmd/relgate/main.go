package main

import (
	"github.com/fmi-build-tools/relgate/internal/cli"
	"github.com/fmi-build-tools/relgate/internal/common/logtrace"
)

func main() {
	logtrace.InitLogger()
	cli.Execute()
}
