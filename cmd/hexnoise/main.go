package main

import "github.com/MeKo-Tech/hexnoise/internal/cmd"

func main() {
	cmd.Execute()
}
