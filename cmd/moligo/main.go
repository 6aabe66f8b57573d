// cmd/moligo/main.go
package main

import (
	"moligo/internal/app"
	"moligo/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
