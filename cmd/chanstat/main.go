package main

import (
	"fmt"
	"os"
	"strings"

	c "github.com/d0ngw/chanstat/common"
)

func main() {
	rootCmd := newRootCmd()
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		fmt.Fprintf(os.Stderr, "chanstat: %v\n", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = rootCmd.Help()
		} else {
			_ = cmd.Usage()
		}
		c.SyncLog()
		os.Exit(1)
	}
	c.SyncLog()
}
