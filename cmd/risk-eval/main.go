package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/core"
	"github.com/riskdash/riskdash/internal/logging"
	"github.com/riskdash/riskdash/internal/utils"
	"github.com/riskdash/riskdash/internal/whitelist"
)

var (
	inputFile = flag.String("file", "", "Input text file (use stdin if not specified)")
	channel   = flag.String("channel", "email", "Channel the content came from (email, sms, instagram, ...)")
	sender    = flag.String("sender", "", "Sender address, checked against trusted domains")
	trusted   = flag.String("trusted", "", "Comma-separated list of trusted sender domains")
	noJitter  = flag.Bool("no-jitter", false, "Disable jitter on display sub-scores")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	content, err := readContent(*inputFile)
	if err != nil {
		logger.Fatal("Failed to read content", zap.Error(err))
	}

	// Trusted senders skip scoring entirely
	if *sender != "" && *trusted != "" {
		checker := whitelist.NewChecker(strings.Split(*trusted, ","), logger)
		if checker.IsTrusted(*sender) {
			fmt.Printf("Sender %s is trusted, skipping scan\n", *sender)
			printVerdict(core.CleanVerdict(), content)
			return
		}
	}

	var jitter core.JitterFunc
	if !*noJitter {
		jitter = rand.Float64
	}

	evaluator := core.NewEvaluator(logger, jitter)
	verdict := evaluator.Evaluate(content, core.Channel(strings.ToLower(*channel)))

	printVerdict(verdict, content)

	if verdict.Result == core.ResultSpam {
		os.Exit(1)
	}
}

func readContent(path string) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(raw), nil
}

func printVerdict(v *core.Verdict, content string) {
	tp := utils.NewTextProcessor(nil)

	fmt.Printf("\n=== Content ===\n")
	fmt.Printf("%s\n", tp.Preview(content, 200))

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Result: %s\n", v.Result)
	fmt.Printf("Category: %s\n", v.Category)
	fmt.Printf("Risk score: %.1f\n", v.RiskScore)
	fmt.Printf("Confidence: %.1f\n", v.ConfidenceScore)
	fmt.Printf("Urgency: %s\n", v.AnalysisDetails.UrgencyLevel)
	fmt.Printf("Sentiment: %s\n", v.AnalysisDetails.Sentiment)
	fmt.Printf("Behavior score: %.1f\n", v.AnalysisDetails.UserBehaviorScore)
	fmt.Printf("Quality score: %.1f\n", v.AnalysisDetails.ContentQualityScore)

	if len(v.Flags) > 0 {
		fmt.Printf("\n=== Flags ===\n")
		for _, f := range v.Flags {
			fmt.Printf("- %s\n", f)
		}
	}
}
