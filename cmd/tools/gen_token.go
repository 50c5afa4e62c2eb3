package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Kunalgarg108/ShareSpace/internal/config"
	"github.com/Kunalgarg108/ShareSpace/pkg/utils"
)

// Dev utility: mint a session token for a seeded user so the API can be
// exercised with curl or a socket client.
func main() {
	userID := flag.String("user", "", "user id to sign the token for")
	flag.Parse()

	if *userID == "" {
		log.Fatal("usage: gen_token -user <user-id>")
	}

	config.LoadConfig()

	token, err := utils.GenerateToken(*userID)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
