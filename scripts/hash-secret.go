// Command hash-secret produces an argon2id hash of an admin secret for
// use as ADMIN_SECRET_HASH.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/linkfolio/linkfolio/internal/auth"
)

type output struct {
	Hash string `json:"admin_secret_hash"`
}

func main() {
	var (
		secret = flag.String("secret", "", "Secret to hash; reads stdin when empty")
		format = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	value := *secret
	if value == "" {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "read secret from stdin:", err)
			os.Exit(1)
		}
		value = strings.TrimRight(line, "\r\n")
	}

	if value == "" {
		fmt.Fprintln(os.Stderr, "secret must not be empty")
		os.Exit(1)
	}

	hash, err := auth.HashSecret(value)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash secret:", err)
		os.Exit(1)
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(hash)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output{Hash: hash})
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
