package main

import (
	"github.com/Vrinda2013/hireai-frontend/internal/gui"
)

func main() {
	// Launch the dashboard. All data lives behind the HireAI API; the
	// desktop client is purely a view over it.
	app := gui.NewApp()
	app.Run()
}
