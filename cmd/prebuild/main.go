package main

import "github.com/goplus/prebuild/cmd/prebuild/internal"

func main() {
	internal.Execute()
}
