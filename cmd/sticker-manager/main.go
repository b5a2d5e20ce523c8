package main

import (
	"os"
)

const (
	AppName    = "Sticker Manager"
	AppID      = "com.stickermanager.album"
	AppVersion = "1.0.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
