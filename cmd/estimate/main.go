package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aviniti/estimate-engine/internal/dashboard"
	"github.com/aviniti/estimate-engine/internal/estimate"
	"github.com/aviniti/estimate-engine/internal/remote"
	"github.com/aviniti/estimate-engine/internal/report"
)

// estimate runs one analysis from the command line and prints the estimate
// document. Reads the idea from -idea, -file, or stdin.
func main() {
	_ = godotenv.Load()

	idea := flag.String("idea", "", "App idea text")
	file := flag.String("file", "", "Read the app idea from a file")
	platformsFlag := flag.String("platforms", "ios,android", "Comma-separated deployment targets")
	language := flag.String("lang", "", "Output language: en or ar (default: detect)")
	mock := flag.Bool("mock", false, "Generate a sample estimate without calling the model")
	server := flag.String("server", "", "Run analysis through a deployed estimate server instead of in-process")
	withDashboard := flag.Bool("dashboard", false, "Include the executive dashboard")
	asMarkdown := flag.Bool("markdown", false, "Print the report as markdown instead of JSON")
	flag.Parse()

	description, err := readIdea(*idea, *file)
	if err != nil {
		log.Fatal(err)
	}
	platforms := splitList(*platformsFlag)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var caller estimate.LLMCaller
	result := estimate.AnalysisResult{}
	if *mock {
		result = estimate.GenerateMockAnalysis(description, platforms)
	} else {
		if *server == "" {
			gateway, err := estimate.NewAnthropicGatewayFromEnv()
			if err != nil {
				log.Fatal(err)
			}
			caller = gateway
		}
		orch := estimate.NewOrchestrator(caller, nil, nil, printProgress, nil)
		if *server != "" {
			orch.SetAnalyzer(remote.NewClient(*server))
		}
		req := estimate.Request{
			IdeaDetails:       estimate.IdeaDetails{Description: description},
			SelectedPlatforms: platforms,
			Language:          *language,
		}
		var err error
		result, err = orch.Run(ctx, req)
		if err != nil {
			log.Fatal(err)
		}
	}

	var dash *dashboard.Dashboard
	if *withDashboard {
		names := make([]string, 0, len(result.EssentialFeatures))
		for _, f := range result.EssentialFeatures {
			names = append(names, f.Name)
		}
		cost, minDays, maxDays := report.Totals(result.EssentialFeatures)
		gen := dashboard.NewGenerator(caller, nil)
		d := gen.Generate(ctx, dashboard.Input{
			AppOverview:  result.AppOverview,
			FeatureNames: names,
			TotalCost:    cost,
			MinTotalDays: minDays,
			MaxTotalDays: maxDays,
			Language:     *language,
			IdeaText:     description,
		})
		dash = &d
	}

	data := report.Build(result.AppOverview, result.EssentialFeatures, dash)
	if *asMarkdown {
		fmt.Println(report.Markdown(data))
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		log.Fatal(err)
	}
}

func printProgress(state estimate.ProcessingState) {
	log.Printf("[%s] %s (progress=%d%%)", state.Step, state.Message, state.Progress)
}

func readIdea(idea, file string) (string, error) {
	if strings.TrimSpace(idea) != "" {
		return idea, nil
	}
	if file != "" {
		blob, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(blob), nil
	}
	stat, _ := os.Stdin.Stat()
	if stat != nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		blob, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(blob), nil
	}
	return "", fmt.Errorf("no app idea given: use -idea, -file, or pipe text on stdin")
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
