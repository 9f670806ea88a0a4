// Command typerighter-check runs one validation round over a text file
// (or stdin) against a validation service and prints the findings.
//
// With no -url it starts a built-in stub service that flags a few common
// misspellings, which makes the command usable as an offline demo of the
// whole pipeline: dirty accrual, block expansion, dispatch, response
// merging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	typerighter "github.com/jaywalker76/prosemirror-typerighter"
)

func main() {
	urlFlag := flag.String("url", "", "validation service URL (empty: use the built-in stub)")
	debug := flag.Bool("debug", false, "log request lifecycle events")
	timeout := flag.Duration("timeout", 10*time.Second, "overall deadline")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	serviceURL := *urlFlag
	if serviceURL == "" {
		stop, addr, err := startStubService()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error starting stub service: %v\n", err)
			os.Exit(1)
		}
		defer stop()
		serviceURL = "http://" + addr + "/check"
	}

	doc := typerighter.NewMemDoc(text)
	store := typerighter.NewMemDecorationStore()
	checker := typerighter.NewHTTPChecker(serviceURL, typerighter.HTTPCheckerOptions{Logger: logger})
	sched := typerighter.NewScheduler(doc, store, checker, typerighter.SchedulerOptions{
		ThrottleInitial: 10 * time.Millisecond,
		Logger:          logger,
	})
	defer sched.Close()

	sched.MarkDirty(typerighter.Range{From: 0, To: doc.Len()})
	if err := sched.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error dispatching validation: %v\n", err)
		os.Exit(1)
	}

	deadline := time.Now().Add(*timeout)
	for {
		state := sched.State()
		if state.Phase() == typerighter.PhaseIdle {
			printFindings(state)
			return
		}
		if state.Error != "" {
			fmt.Fprintf(os.Stderr, "validation failed: %s\n", state.Error)
			os.Exit(1)
		}
		if time.Now().After(deadline) {
			fmt.Fprintln(os.Stderr, "timed out waiting for validation")
			os.Exit(1)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

func printFindings(state typerighter.PluginState) {
	if len(state.CurrentValidations) == 0 {
		fmt.Println("no findings")
		return
	}
	for _, v := range state.CurrentValidations {
		fmt.Printf("%d..%d %q: %s (%s)\n", v.Span.From, v.Span.To, v.Text, v.Annotation, v.Category)
		for _, s := range v.Suggestions {
			fmt.Printf("    suggestion: %q\n", s)
		}
	}
}

// stubWords maps misspellings the stub service flags to suggestions.
var stubWords = map[string][]string{
	"teh":        {"the"},
	"recieve":    {"receive"},
	"definately": {"definitely"},
}

// startStubService serves a minimal validation endpoint on a loopback
// port, answering in the wire format the client expects.
func startStubService() (stop func(), addr string, err error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, "", err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		type rule struct {
			Description string `json:"description"`
		}
		type result struct {
			FromPos               int      `json:"fromPos"`
			ToPos                 int      `json:"toPos"`
			Message               string   `json:"message"`
			Rule                  rule     `json:"rule"`
			SuggestedReplacements []string `json:"suggestedReplacements"`
		}
		results := []result{}
		offset := 0
		for _, word := range strings.Fields(req.Text) {
			pos := strings.Index(req.Text[offset:], word) + offset
			offset = pos + len(word)
			trimmed := strings.ToLower(strings.Trim(word, ".,;:!?"))
			if suggestions, ok := stubWords[trimmed]; ok {
				results = append(results, result{
					FromPos:               pos,
					ToPos:                 pos + len(trimmed),
					Message:               fmt.Sprintf("%q is a misspelling", trimmed),
					Rule:                  rule{Description: "spelling"},
					SuggestedReplacements: suggestions,
				})
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	})

	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)
	return func() { srv.Close() }, ln.Addr().String(), nil
}
