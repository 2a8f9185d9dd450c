package main

import "ecodispose_backend/internal/app"

func main() {
	app.Run()
}
