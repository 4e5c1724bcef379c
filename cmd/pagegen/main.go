// Command pagegen generates a single landing page from the command line
// and writes the result as JSON, plus optionally a rendered HTML file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pagecraft/internal/llm"
	"pagecraft/internal/pagestore"
	"pagecraft/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	desc := flag.String("desc", "", "product description (required)")
	theme := flag.String("theme", "", "color theme (dark, light, vibrant, minimal, ocean, sunset)")
	vibe := flag.String("vibe", "", "vibe hint (playful, corporate, luxury, bold, minimal, futuristic)")
	sections := flag.Int("sections", 0, "section count, 0 uses the matched pattern's default")
	model := flag.String("model", "gemini-2.0-flash", "generator model")
	fake := flag.Bool("fake", false, "use the canned offline client")
	out := flag.String("out", "", "write result JSON to this file instead of stdout")
	htmlOut := flag.String("html", "", "also write rendered HTML to this file")
	quiet := flag.Bool("q", false, "suppress progress output")
	flag.Parse()

	if strings.TrimSpace(*desc) == "" {
		fmt.Fprintln(os.Stderr, "usage: pagegen -desc \"what the page sells\" [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := buildClient(ctx, *fake, *model)
	if err != nil {
		log.Fatalf("init llm client: %v", err)
	}
	defer client.Close()

	in := pipeline.OrchestrationInput{Description: *desc}
	if *theme != "" || *vibe != "" {
		in.WizardData = &pipeline.WizardData{ColorTheme: *theme, Vibe: *vibe}
	}
	if *sections > 0 {
		in.Preferences = &pipeline.Preferences{SectionCount: *sections}
	}

	orch := pipeline.NewOrchestrator(client)
	if !*quiet {
		orch.OnProgress = func(ev pipeline.ProgressEvent) {
			if ev.TotalSections > 0 {
				fmt.Fprintf(os.Stderr, "[%3d%%] %s (%d/%d)\n", ev.Progress, ev.Message, ev.CurrentSection, ev.TotalSections)
				return
			}
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", ev.Progress, ev.Message)
		}
	}

	result, err := orch.Run(ctx, in)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	if *out == "" {
		fmt.Println(string(b))
	} else if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	if *htmlOut != "" && result.Page != nil {
		rec := pagestore.Record{
			PageID:      pagestore.NewPageID(result.Page.Title),
			Title:       result.Page.Title,
			Description: result.Page.Description,
			Page:        *result.Page,
		}
		html, err := pagestore.RenderHTML(rec)
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		if err := os.WriteFile(*htmlOut, html, 0o644); err != nil {
			log.Fatalf("write %s: %v", *htmlOut, err)
		}
	}

	if !*quiet {
		fmt.Fprintf(os.Stderr, "done: %d sections, score %d, %d tokens in %dms\n",
			len(result.Page.Sections), result.Metadata.QualityScore,
			result.Metadata.TokensUsed, result.Metadata.GenerationTimeMs)
	}
}

func buildClient(ctx context.Context, fake bool, model string) (llm.Client, error) {
	if fake {
		return llm.NewFakeClient(), nil
	}
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "no GEMINI_API_KEY set, using the offline client")
		return llm.NewFakeClient(), nil
	}
	gemini, err := llm.NewGeminiClient(ctx, apiKey, model)
	if err != nil {
		return nil, err
	}
	return llm.Wrap(gemini, llm.Retry(3, 500*time.Millisecond), llm.RateLimitFromEnv("LLM", "GEMINI")), nil
}
