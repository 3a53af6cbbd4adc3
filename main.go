package main

import "github.com/vulnticket/vulnticket/cmd/vulnticket"

func main() { vulnticket.Execute() }
