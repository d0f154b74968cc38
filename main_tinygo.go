//go:build tinygo

package main

import (
	"tftkeypad/app"
	"tftkeypad/hal"
)

func main() {
	app.Run(hal.New())
}
