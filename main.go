package main

import "stay-booking/cmd"

func main() {
	cmd.Execute()
}
