package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/engine"
	"github.com/avoskres/career-compass/internal/interview"
	"github.com/avoskres/career-compass/internal/logger"
)

const promptDonePicking = "Done picking"

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run the guided interview interactively in the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		runInterview()
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}

// runInterview drives the engine locally, playing the role of the client:
// it renders questions, collects answers and merges state_updates back into
// its session copy between steps.
func runInterview() {
	ctx := context.Background()

	// Prompts stay readable because logs only show up with --debug.
	zl := zap.NewNop()
	if viper.GetBool("debug") {
		var err error
		zl, err = logger.New(viper.GetBool("json"), true)
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	eng := buildEngine(ctx, config, zl)

	var state *interview.SessionState
	req := &engine.Request{}

	for {
		resp, err := eng.Step(ctx, req)
		if err != nil {
			zl.Fatal("interview step failed", zap.Error(err))
		}

		state, err = interview.MergeUpdates(state, resp.StateUpdates)
		if err != nil {
			zl.Fatal("merging state updates", zap.Error(err))
		}

		fmt.Println()
		fmt.Println(resp.AssistantMessage)

		if resp.Done {
			printResult(resp.Result)
			return
		}

		answer, freeText, err := askQuestion(resp.Question)
		if err != nil {
			zl.Fatal("exiting", zap.Error(err))
		}

		req = &engine.Request{
			State:             state,
			UserInput:         answer,
			FreeText:          freeText,
			CurrentQuestionID: resp.Question.ID,
		}
	}
}

func askQuestion(q *interview.Question) (string, string, error) {
	var answer string
	var err error

	if q.Cardinality == interview.CardinalityMulti {
		answer, err = askMulti(q)
	} else {
		answer, err = askSingle(q)
	}
	if err != nil {
		return "", "", err
	}

	freeText := ""
	if q.AllowFreeText {
		prompt := promptui.Prompt{Label: "Anything to add in your own words (optional)"}
		freeText, err = prompt.Run()
		if err != nil {
			return "", "", err
		}
	}

	return answer, strings.TrimSpace(freeText), nil
}

func askSingle(q *interview.Question) (string, error) {
	labels := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		labels = append(labels, opt.Label)
	}

	prompt := promptui.Select{Label: q.Prompt, Items: labels}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return q.Options[idx].Value, nil
}

func askMulti(q *interview.Question) (string, error) {
	picked := make([]string, 0, q.MaxSelect)
	remaining := append([]interview.Option(nil), q.Options...)

	for {
		if q.MaxSelect > 0 && len(picked) >= q.MaxSelect {
			break
		}

		labels := make([]string, 0, len(remaining)+1)
		for _, opt := range remaining {
			labels = append(labels, opt.Label)
		}
		if len(picked) > 0 {
			labels = append(labels, promptDonePicking)
		}

		prompt := promptui.Select{Label: q.Prompt, Items: labels}
		idx, selected, err := prompt.Run()
		if err != nil {
			return "", err
		}
		if selected == promptDonePicking {
			break
		}

		picked = append(picked, remaining[idx].Value)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	return strings.Join(picked, ","), nil
}

func printResult(result *interview.Result) {
	if result == nil {
		return
	}

	fmt.Println()
	fmt.Println(result.Summary)

	fmt.Println("\nWork now:")
	for _, d := range result.WorkNow {
		fmt.Printf("  %s\n", d.Title)
		for _, why := range d.Why {
			fmt.Printf("    - %s\n", why)
		}
	}

	if len(result.ImproveLater) > 0 {
		fmt.Println("\nWorth a course or certification:")
		for _, d := range result.ImproveLater {
			fmt.Printf("  %s\n", d.Title)
		}
	}

	fmt.Println("\nBetter to avoid:")
	for _, entry := range result.Avoid {
		fmt.Printf("  - %s\n", entry)
	}

	fmt.Printf("\nNext step: %s\n", result.NextStep)
}
