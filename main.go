package main

import (
	"daylog.dev/backend/cmd/app"
)

// @title        daylog API
// @version      1.0.0
// @description  Aggregates check-ins, tracker activities, daily metrics and weather
// @description  into a chronological day summary for a single user.
// @BasePath     /api
func main() {
	app.Run()
}
