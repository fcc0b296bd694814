package main

import "hostmarket_backend/internal/app"

func main() {
	app.Run()
}
