package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/ltejedor/aihacks/core"
)

// Synthetic chat traffic for seeding a test export. Roughly one message in
// five shares something worth keeping; the rest is ambient conversation.
var resourceBodies = []string{
	"Found a great walkthrough for fine-tuning small models on a single GPU: https://example.com/fine-tune-guide",
	"This repo has the cleanest agent scaffolding I've seen so far: https://github.com/example/agent-kit",
	"If anyone is fighting CUDA OOM errors, this gist of memory tricks saved me hours: https://example.com/cuda-oom",
	"PSA: the new embeddings endpoint is 4x cheaper if you batch requests, wrote up notes here: https://example.com/embed-batching",
	"Sharing my prompt eval harness, supports side-by-side diffs: https://github.com/example/prompt-evals",
	"The paper everyone keeps mentioning about retrieval quality: https://example.com/retrieval-paper",
	"Here's the Colab I used for the whisper transcription demo: https://example.com/whisper-colab",
	"Best explanation of KV cache I've found, with diagrams: https://example.com/kv-cache",
	"Free credits link for the hackathon is still active: https://example.com/credits",
	"Wrote a small CLI that converts chat exports to markdown: https://github.com/example/chat2md",
	"This vector DB comparison spreadsheet is worth bookmarking: https://example.com/vectordb-compare",
	"Step-by-step deploy guide for open models on bare metal: https://example.com/bare-metal-llm",
}

var chatterBodies = []string{
	"anyone around for a quick pairing session?",
	"lol that demo went better than expected",
	"what time is the standup tomorrow?",
	"I'll be late to the meetup, save me a seat",
	"congrats on the launch!",
	"same issue here, restarting fixed it",
	"thanks, that worked",
	"who's presenting first on Saturday?",
	"the wifi in the venue is terrible again",
	"can someone reshare the zoom link?",
	"nice, looking forward to it",
	"my build has been stuck for 20 minutes, send help",
	"ok heading out, see everyone tomorrow",
	"the pizza is here",
	"did we decide on a team name yet?",
	"that bug was a missing await, of course",
}

var authors = []string{
	"maya", "deshawn", "priya", "alex", "tomas", "lin", "sofia", "kenji",
}

var emojis = []string{"👍", "🔥", "🙌", "💯", "🚀"}

var (
	outFileName = flag.String("out", "export.json", "output file for the generated export")
	count       = flag.Int("count", 200, "number of messages to generate")
	seed        = flag.Int64("seed", 0, "random seed, 0 means current time")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

type export struct {
	Messages []core.Message `json:"messages"`
}

// generate builds a plausible export: mostly chatter, occasional shared
// resources, with reactions skewed toward the resources.
func generate(rng *rand.Rand, n int) []core.Message {
	messages := make([]core.Message, 0, n)
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		ts = ts.Add(time.Duration(30+rng.Intn(900)) * time.Second)

		var body string
		isResource := rng.Intn(5) == 0
		if isResource {
			body = resourceBodies[rng.Intn(len(resourceBodies))]
		} else {
			body = chatterBodies[rng.Intn(len(chatterBodies))]
		}

		msg := core.Message{
			ID:        fmt.Sprintf("msg-%04d", i),
			Timestamp: ts.Unix(),
			Date:      ts.Format(time.RFC3339),
			Author:    authors[rng.Intn(len(authors))],
			Body:      body,
		}

		// Resources attract reactions more often than chatter.
		reactChance := 8
		if isResource {
			reactChance = 2
		}
		if rng.Intn(reactChance) == 0 {
			msg.Reactions = append(msg.Reactions, core.Reaction{
				Emoji: emojis[rng.Intn(len(emojis))],
				Count: 1 + rng.Intn(4),
			})
		}

		messages = append(messages, msg)
	}
	return messages
}

func main() {
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	messages := generate(rng, *count)

	data, err := json.MarshalIndent(export{Messages: messages}, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outFileName, data, 0644); err != nil {
		panic(err)
	}

	slog.Info("wrote export", "file", *outFileName, "messages", len(messages), "seed", s)
}
