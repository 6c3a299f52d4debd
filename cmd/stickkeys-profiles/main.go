package main

import "github.com/calvinmclean/stickkeys/profiles"

func main() {
	profiles.NewAPI().RunCLI()
}
