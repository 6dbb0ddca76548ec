package main

import (
	"github.com/datazip-inc/cityfilter/protocol"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/datazip-inc/cityfilter/utils/safego"
)

func main() {
	defer safego.Recovery(true)

	err := protocol.CreateRootCommand().Execute()
	if err != nil {
		logger.Fatal(err)
	}
}
