package main

import (
	"bytes"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const minPasswordLength = 6

func main() {
	if len(os.Args) > 1 {
		printUsage()
		os.Exit(1)
	}

	hash, ok := hashFromPrompt()
	if !ok {
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Set this as ADMIN_PASSWORD_HASH on the server:")
	fmt.Println()
	fmt.Println(hash)
}

func printUsage() {
	fmt.Println("Virtual Museum Password Hashing")
	fmt.Println("")
	fmt.Println("Usage: hashpw")
	fmt.Println("")
	fmt.Println("Prompts for a password and prints its bcrypt hash for use")
	fmt.Println("as the ADMIN_PASSWORD_HASH environment variable.")
}

func hashFromPrompt() (string, bool) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return "", false
	}

	fmt.Print("Confirm Password: ")
	confirm, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		return "", false
	}

	if !bytes.Equal(password, confirm) {
		fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
		return "", false
	}

	hash, err := hashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return "", false
	}
	return hash, true
}

// hashPassword validates and hashes a password with bcrypt.
func hashPassword(password []byte) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	// bcrypt silently truncates beyond 72 bytes
	if len(password) > 72 {
		return "", fmt.Errorf("password must not exceed 72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
