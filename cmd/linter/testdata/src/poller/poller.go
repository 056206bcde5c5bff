package poller

import (
	"log"
	"os"

	"go.uber.org/zap"
)

func poll() {
	panic("unreachable") // want "found usage of panic"
}

func abort() {
	log.Fatal("no metric list") // want "found usage of log.Fatal outside of main function"
	os.Exit(1)                  // want "found usage of os.Exit outside of main function"
}

func logger() {
	zap.S().Info("polled")  // want "found usage of global logger zap.S"
	zap.L().Info("polled")  // want "found usage of global logger zap.L"
	zap.ReplaceGlobals(nil) // want "found usage of global logger zap.ReplaceGlobals"
}
