// Command token mints a signed identity token for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"reelvault/internal/config"
	"reelvault/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id to embed in the token")
	role := flag.String("role", "", "optional role claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user USER_ID [-role ROLE] [-ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	token, err := jwt.New(cfg.JWT.Secret, *ttl).GenerateToken(*userID, *role)
	if err != nil {
		log.Fatalf("sign token failed: %v", err)
	}
	fmt.Println(token)
}
