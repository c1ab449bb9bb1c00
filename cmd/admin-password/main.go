package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"techforge_app_go/middleware"

	"golang.org/x/term"
)

// Prints a bcrypt hash for ADMIN_PASSWORD_HASH. Pass a hash as the only
// argument to check a password against it instead.
func main() {
	if len(os.Args) > 2 {
		log.Fatal("Usage: admin-password [hash-to-check]")
	}

	fmt.Print("Password: ")
	password := readPassword()

	if len(os.Args) == 2 {
		if middleware.CheckAdminPassword(password, os.Args[1]) {
			fmt.Println("✓ Password matches")
			return
		}
		fmt.Println("✗ Password does not match")
		os.Exit(1)
	}

	if len(password) < 12 {
		log.Fatal("Password must be at least 12 characters long")
	}

	fmt.Print("Confirm: ")
	if confirm := readPassword(); confirm != password {
		log.Fatal("Passwords do not match")
	}

	hash, err := middleware.HashAdminPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println()
	fmt.Println("Add this to your .env:")
	fmt.Printf("  ADMIN_PASSWORD_HASH='%s'\n", hash)
}

var stdin = bufio.NewReader(os.Stdin)

// readPassword reads without echo from a terminal, or a plain line when
// stdin is piped
func readPassword() string {
	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatalf("Failed to read password: %v", err)
		}
		return string(b)
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("Failed to read password: %v", err)
	}
	return strings.TrimRight(line, "\r\n")
}
