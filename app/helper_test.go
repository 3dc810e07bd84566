package app

import (
	"fmt"

	"github.com/d0ngw/chanstat/http"
)

func fmtConfig(statsFile string) string {
	return fmt.Sprintf(testConfig, statsFile)
}

func newHTTPConf() *http.Config {
	return http.NewConfig("127.0.0.1:0")
}
