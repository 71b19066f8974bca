package main

import (
	"go.uber.org/fx"

	"github.com/billmate/billmate/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
