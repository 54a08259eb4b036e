// Package main implements a small command-line consumer of the corpusgate
// API. It resolves a signed download URL for a blob and prints it, using
// the pkg/corpusgate client library as its only integration point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"corpusgate/pkg/corpusgate"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "corpusgate server URL")
	apiKey := flag.String("api-key", os.Getenv("CORPUSGATE_API_KEY"), "API key (defaults to CORPUSGATE_API_KEY)")
	container := flag.String("container", "", "container holding the blob")
	filename := flag.String("filename", "", "blob name within the container")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	if *container == "" || *filename == "" {
		fmt.Fprintln(os.Stderr, "both -container and -filename must be provided")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := corpusgate.NewClient(*serverURL, *apiKey)
	url, err := client.ResolveDownloadURL(ctx, *container, *filename)
	if err != nil {
		switch {
		case errors.Is(err, corpusgate.ErrUnauthorized):
			fmt.Fprintln(os.Stderr, "unauthorized: check the API key")
		case errors.Is(err, corpusgate.ErrInvalidRequest):
			fmt.Fprintf(os.Stderr, "rejected: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(url)
}
