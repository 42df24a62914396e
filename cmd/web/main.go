package main

import "yuanfen_backend/internal/app"

func main() {
	app.Run()
}
