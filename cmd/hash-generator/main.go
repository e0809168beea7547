// Command hash-generator prints the bcrypt hash of each password given on
// the command line, using the same hasher as the signup flow. Useful for
// seeding users directly in the database during development.
package main

import (
	"fmt"
	"os"

	"github.com/taskwell/taskwell-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <password> [password...]")
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(0)
	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
