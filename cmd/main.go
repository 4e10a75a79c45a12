package main

import (
	"github.com/kasikotas/order/internal/app"
	"github.com/kasikotas/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
