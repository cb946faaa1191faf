package main

import "github.com/thereayou/polytex-chat/cmd/server"

func main() {
	server.NewServer().Run()
}
