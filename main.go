package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/pmkol/dlist/coremain"
	"github.com/pmkol/dlist/mlog"
)

func main() {
	if err := coremain.Run(); err != nil {
		mlog.L().Error("exited", zap.Error(err))
		os.Exit(1)
	}
}
