// Command layoutreport prints how many nodes of a compressed Fenwick tree fit in
// each cache level and page size, for the fixed, byte and bit layouts.
//
//	layoutreport --entry-width-bits=7 --format=table
//	layoutreport --regions=L2=1MiB,hugepage=1GiB --strategies=bit
//	layoutreport --index=1024
package main

import (
	"fmt"
	"os"

	"github.com/vsivsi/nodelayout/internal/config"
	"github.com/vsivsi/nodelayout/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.InitLogger(cfg.LogLevel, cfg.AppName, os.Stderr)

	if err := run(cfg, os.Stdout); err != nil {
		logger.Error("layoutreport failed", err)
		os.Exit(1)
	}
}
