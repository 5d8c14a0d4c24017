package main

// Exercise the humanization workflow from the command line:
//   go run ./cmd/humanizecli -text "..." [-mock] [-readability University]

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"humanizer-backend/internal/credits"
	"humanizer-backend/internal/humanize"
	"humanizer-backend/internal/provider"
	"humanizer-backend/internal/provider/undetectable"
	"humanizer-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	text := flag.String("text", "", "Text to humanize")
	filePath := flag.String("file", "", "Path to a text file to humanize (overrides -text)")
	readability := flag.String("readability", provider.DefaultReadability, "Target readability")
	purpose := flag.String("purpose", provider.DefaultPurpose, "Writing purpose")
	strength := flag.String("strength", provider.DefaultStrength, "Humanization strength")
	tone := flag.String("tone", "", "Tone for the mock strategy")
	mock := flag.Bool("mock", cfg.Humanizer == "mock", "Use the offline mock strategy")
	flag.Parse()

	input := *text
	if strings.TrimSpace(*filePath) != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			exitErr(fmt.Sprintf("read file: %v", err))
		}
		input = string(data)
	}
	if strings.TrimSpace(input) == "" {
		exitErr("text is required (use -text or -file)")
	}

	// The CLI gets its own generous balance; it is a provider harness, not
	// a billing surface.
	creditsSvc := credits.NewService(
		credits.NewSeededMemoryStore(1000),
		credits.NewSeededMemoryStore(credits.GuestSeedCredits),
		credits.NewMemoryUsageLog(),
	)

	var humanizer humanize.Humanizer
	if *mock {
		humanizer = humanize.NewMockService(creditsSvc)
	} else {
		if err := cfg.ValidateProvider(); err != nil {
			exitErr(err.Error())
		}
		client, err := undetectable.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderTimeout)
		if err != nil {
			exitErr(fmt.Sprintf("provider client: %v", err))
		}
		humanizer = humanize.NewService(client, creditsSvc, humanize.NewPoller(
			client,
			cfg.PollMaxAttempts,
			cfg.PollBaseDelay,
			cfg.PollDelayStep,
			cfg.PollMaxDelay,
		))
	}

	resp := humanizer.Humanize(context.Background(), humanize.Request{
		Text:        input,
		Tone:        *tone,
		Readability: *readability,
		Purpose:     *purpose,
		Strength:    *strength,
	}, credits.IdentityFromUserID("cli:local"))

	if !resp.Success {
		exitErr(resp.Error)
	}
	fmt.Println(resp.Output)
	fmt.Fprintf(os.Stderr, "credits used: %d\n", resp.CreditsUsed)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
	os.Exit(1)
}
