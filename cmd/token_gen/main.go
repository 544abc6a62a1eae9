package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/config"
	"aeroportal/flightops/internal/constants"
)

// Issues a bearer token signed with JWT_SECRET, e.g.
//
//	token_gen -sub dispatch-01 -role operator -ttl 720h
func main() {
	subject := flag.String("sub", "", "token subject (user or integration name)")
	role := flag.String("role", string(constants.RoleViewer), "viewer, operator or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-sub is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; the server runs with auth disabled")
	}

	signer := common.NewTokenSigner([]byte(cfg.JWTSecret))
	token, err := signer.Issue(*subject, constants.Role(*role), *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
