package main

import "github.com/clusteriq/assistant/internal/app"

func main() {
	err := app.NewAssistantApp().Run()
	if err != nil {
		panic(err)
	}
}
