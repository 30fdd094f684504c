/*
Copyright © 2026 tidytask contributors
*/
package main

import "github.com/tidytask/tidytask/cmd"

func main() {
	cmd.Execute()
}
