package main

import "github.com/WSDOT/PGSuper-sub013/cmd"

func main() {
	cmd.Execute()
}
