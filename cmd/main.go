// Package main starts the image viewer.
package main

import "github.com/Akaiko1/image-viewer/internal/cli"

func main() {
	cli.Execute()
}
