package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates an admin key and its bcrypt hash. The hash goes into
// ADMIN_KEY_HASH; the cleartext key is handed to the operator and
// never stored.
func main() {
	key := flag.String("key", "", "Use this key instead of generating one")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	cleartext := *key
	if cleartext == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
			os.Exit(1)
		}
		cleartext = base64.RawURLEncoding.EncodeToString(raw)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cleartext), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]string{
			"key":  cleartext,
			"hash": string(hash),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		fmt.Println("Admin Key Generated")
		fmt.Println("===================")
		fmt.Printf("Key:  %s\n", cleartext)
		fmt.Printf("Hash: %s\n", hash)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  export ADMIN_KEY_HASH='<hash>'")
		fmt.Println("  curl -H 'X-Admin-Key: <key>' -X POST http://localhost:8080/v1/admin/events/sweep")
	}
}
