package main

import "github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/cli"

func main() {
	cli.Execute()
}
