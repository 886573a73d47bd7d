package main

import (
	"fmt"
	"os"
	"strconv"

	"go-website-backend/pkg/security"
)

// Prints a bcrypt hash for seeding users by hand.
// Usage: go run scripts/genhash.go <password> [cost]
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password> [cost]")
		os.Exit(2)
	}

	cost := security.DefaultBcryptCost
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: cost must be an integer")
			os.Exit(2)
		}
		cost = n
	}

	hash, err := security.NewBcryptHasher(cost).Hash(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
