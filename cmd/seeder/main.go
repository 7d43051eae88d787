package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/verity"
	"github.com/poiesic/verity/core"
	"github.com/poiesic/verity/submission"
)

// Seed pairs in "question|answer" form.
var pairs = []string{
	"How do I reset my password?|Open the self-service portal, choose Forgot Password, and follow the emailed reset link.",
	"How do I connect to the VPN?|Install the VPN client from the software center and sign in with your corporate credentials.",
	"What is single sign-on?|Single sign-on lets you authenticate once and access every connected application without logging in again.",
	"What is the guest wifi password?|Guest wifi credentials rotate monthly and are posted at every reception desk.",
	"How do I book a meeting room?|Open the calendar, create an event, and pick a free room from the room finder.",
	"How do I file an expense report?|Submit receipts through the finance portal within thirty days of purchase.",
	"Why is my laptop fan always running?|Background indexing after an OS update usually settles within a day; if not, file an IT ticket.",
	"What is the difference between a VPN and a proxy?|A VPN encrypts all traffic at the network layer while a proxy forwards specific application traffic.",
	"Which password manager should I use?|The company licenses a password manager for all staff; install it from the software center.",
	"My monitor is not working after undocking|Reseat the dock cable and toggle the display input; most docks need a full power cycle.",
	"List all supported operating systems|Current images exist for Windows 11, macOS 14 and later, and Ubuntu LTS releases.",
	"How do I request software that is not in the software center?|Raise a software request ticket with a business justification; licensing reviews take about a week.",
	"What does MFA stand for?|Multi-factor authentication, a second verification step beyond your password.",
	"Why do I need to re-verify answers?|Verified answers age; periodic re-verification keeps the knowledge base trustworthy.",
	"How do I escalate a production incident?|Page the on-call engineer through the incident tool and open a severity-tagged channel.",
	"What are the backup retention periods?|Daily backups are kept for thirty days and monthly snapshots for one year.",
	"How do I rotate my API keys?|Generate a new key in the developer console, deploy it, then revoke the old key.",
	"Explain how the deploy pipeline works|Commits merged to main are built, tested, and promoted through staging before production rollout.",
	"Which is best for structured logging?|Use the standard structured logger bundled with the platform libraries.",
	"The build fails with a missing dependency error|Clear the module cache and re-run the dependency download before building.",
}

var seedFileName = flag.String("src", "", "file of seed data, one question|answer pair per line")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// submissionsFrom parses "question|answer" lines into pre-accepted submissions.
func submissionsFrom(source iter.Seq[string]) []*submission.Submission {
	var subs []*submission.Submission
	for line := range source {
		question, answer, ok := strings.Cut(line, "|")
		if !ok {
			slog.Warn("skipping malformed seed line", "line", line)
			continue
		}
		subs = append(subs, &submission.Submission{
			Question: strings.TrimSpace(question),
			Answer:   strings.TrimSpace(answer),
			Rating:   core.RatingAccepted,
			Verifier: "seeder",
			Type:     core.VerificationTypeSelf,
		})
	}
	return subs
}

func main() {
	db, err := verity.NewDatabase("./verity_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewSubmissionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(pairs)
	}

	subs := submissionsFrom(source)
	results, err := pipeline.SubmitBatch(ctx, subs)
	if err != nil {
		slog.Error("error seeding answers", "err", err)
	}

	seeded := 0
	for _, answer := range results {
		if answer != nil {
			seeded++
		}
	}
	slog.Info("seeding complete", "submitted", len(subs), "stored", seeded)
}
