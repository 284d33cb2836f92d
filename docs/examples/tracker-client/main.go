// Linkfolio Tracker Client Example
//
// This is a minimal example of how to send tracking events to a
// Linkfolio server from a backend or a CLI.
//
// Usage:
//   go run main.go -base-url http://localhost:8080 visit -referrer https://t.co/abc
//   go run main.go -base-url http://localhost:8080 click -link-name Portfolio -link-url https://example.com

package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type visitEvent struct {
	UserAgent string `json:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

type clickEvent struct {
	LinkName  string `json:"linkName"`
	LinkURL   string `json:"url,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "Linkfolio server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("usage: tracker-client [-base-url URL] visit|click [flags]")
	}

	switch args[0] {
	case "visit":
		fs := flag.NewFlagSet("visit", flag.ExitOnError)
		userAgent := fs.String("user-agent", "tracker-client-example", "User agent to report")
		referrer := fs.String("referrer", "", "Referrer URL")
		_ = fs.Parse(args[1:])

		send(*baseURL+"/api/track/visit", visitEvent{
			UserAgent: *userAgent,
			Referrer:  *referrer,
		})

	case "click":
		fs := flag.NewFlagSet("click", flag.ExitOnError)
		linkName := fs.String("link-name", "", "Label of the clicked link (required)")
		linkURL := fs.String("link-url", "", "Destination URL")
		userAgent := fs.String("user-agent", "tracker-client-example", "User agent to report")
		referrer := fs.String("referrer", "", "Referrer URL")
		_ = fs.Parse(args[1:])

		if *linkName == "" {
			log.Fatal("-link-name is required for click events")
		}

		send(*baseURL+"/api/track/click", clickEvent{
			LinkName:  *linkName,
			LinkURL:   *linkURL,
			UserAgent: *userAgent,
			Referrer:  *referrer,
		})

	default:
		log.Fatalf("unknown event type %q; use visit or click", args[0])
	}
}

func send(url string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal payload: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("send event: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatalf("decode response: %v", err)
	}

	if resp.StatusCode != http.StatusOK || !result["success"] {
		fmt.Fprintf(os.Stderr, "event rejected: status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	log.Printf("✓ event accepted by %s", url)
}
