// One-shot reporting tool: loads the ledger export and prints the derived
// holdings and growth views as JSON, without touching the LLM or any live
// market feed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ak18akashrajr/portfolio-llm/internal/ledger"
	"github.com/ak18akashrajr/portfolio-llm/internal/quant"
	"github.com/ak18akashrajr/portfolio-llm/internal/store"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

type report struct {
	Holdings []types.Holding       `json:"holdings"`
	Summary  types.Summary         `json:"summary"`
	QoQ      []types.QuarterGrowth `json:"qoq_growth"`
	SixMonth types.Growth          `json:"six_month_growth"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	ledgerPath := flag.String("ledger", "", "ledger CSV path (overrides config)")
	flag.Parse()

	path := *ledgerPath
	if path == "" {
		cfg, err := store.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		path = cfg.Ledger.Path
	}

	data, err := ledger.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load ledger %q: %v\n", path, err)
		os.Exit(1)
	}

	r := report{
		Holdings: data.Holdings,
		Summary:  quant.Summary(data.Log),
		QoQ:      ledger.QuarterlyGrowth(data.Series),
		SixMonth: ledger.SixMonthGrowth(data.Series),
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
