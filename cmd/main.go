// Command main serves the provider directory resources over HTTP.
package main

import (
	"provider-directory/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to start directory server: %v", err)
	}

	app.Run()
}
