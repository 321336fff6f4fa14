// cmd/redline/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"redline/client"
	"redline/internal/change"
	"redline/internal/diff"
	"redline/internal/workspace"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Redline reviews AI revisions of markup documents",
	Long: `Redline compares an original markup document against an AI-revised
version, splits the difference into individually reviewable changes, and
rebuilds the document from the changes you accept.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Redline server URL")

	var contextLines int
	var minGap int

	var diffCmd = &cobra.Command{
		Use:   "diff <original> <revised>",
		Short: "Show the changes between two document versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, revised, err := readDocuments(args[0], args[1])
			if err != nil {
				return err
			}

			engine := diff.NewEngine(diff.Config{ContextLines: contextLines, MinGap: minGap})
			result := engine.Compare(original, revised)
			renderResult(result)
			fmt.Println(result.Summary())
			return nil
		},
	}
	diffCmd.Flags().IntVar(&contextLines, "context", 3, "Unchanged lines shown around each change")
	diffCmd.Flags().IntVar(&minGap, "gap", 5, "Minimum unchanged lines separating two hunks")

	var reviewCmd = &cobra.Command{
		Use:   "review",
		Short: "Work with review sessions on a Redline server",
	}

	var createCmd = &cobra.Command{
		Use:   "create <original> <revised>",
		Short: "Open a review session for two document versions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, revised, err := readDocuments(args[0], args[1])
			if err != nil {
				return err
			}

			session, err := client.New(serverURL).CreateReview(original, revised)
			if err != nil {
				return fmt.Errorf("creating review: %w", err)
			}

			fmt.Printf("Created review %s (%s)\n", session.ID, session.Summary())
			printChanges(session.Changes)
			return nil
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show <session>",
		Short: "Show a session's changes and their decisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL)

			session, err := c.GetReview(args[0])
			if err != nil {
				return fmt.Errorf("fetching review: %w", err)
			}

			result, err := c.GetDiff(args[0])
			if err != nil {
				return fmt.Errorf("fetching diff: %w", err)
			}

			renderResult(result)
			fmt.Printf("%s (%s)\n", session.Summary(), session.ID)
			printChanges(session.Changes)
			return nil
		},
	}

	var acceptCmd = &cobra.Command{
		Use:   "accept <session> <change>...",
		Short: "Accept one or more changes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decide(args[0], args[1:], string(change.Accepted))
		},
	}

	var rejectCmd = &cobra.Command{
		Use:   "reject <session> <change>...",
		Short: "Reject one or more changes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decide(args[0], args[1:], string(change.Rejected))
		},
	}

	var output string
	var applyCmd = &cobra.Command{
		Use:   "apply <session>",
		Short: "Reconstruct the document from the accepted changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := client.New(serverURL).Result(args[0])
			if err != nil {
				return fmt.Errorf("reconstructing document: %w", err)
			}

			if output == "" {
				fmt.Print(doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(doc), output)
			return nil
		},
	}
	applyCmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a file instead of stdout")

	var watchCmd = &cobra.Command{
		Use:   "watch <original> <revised>",
		Short: "Re-render the diff whenever either document changes on disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}

			w, err := workspace.NewDocumentWatcher(args[0], args[1], diff.NewEngine(diff.DefaultConfig()), logger)
			if err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer w.Close()

			_, _, result := w.Current()
			renderResult(result)
			fmt.Println(result.Summary())

			for update := range w.Updates() {
				fmt.Println(strings.Repeat("-", 40))
				renderResult(update.Result)
				fmt.Println(update.Result.Summary())
			}
			return nil
		},
	}

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(watchCmd)

	reviewCmd.AddCommand(createCmd)
	reviewCmd.AddCommand(showCmd)
	reviewCmd.AddCommand(acceptCmd)
	reviewCmd.AddCommand(rejectCmd)
	reviewCmd.AddCommand(applyCmd)
}

func decide(sessionID string, changeIDs []string, state string) error {
	c := client.New(serverURL)
	for _, id := range changeIDs {
		session, err := c.Decide(sessionID, id, state)
		if err != nil {
			return fmt.Errorf("deciding %s: %w", id, err)
		}
		fmt.Printf("%s %s  (%d pending)\n", state, id, len(session.Pending()))
	}
	return nil
}

func readDocuments(originalPath, revisedPath string) (string, string, error) {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", originalPath, err)
	}
	revised, err := os.ReadFile(revisedPath)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", revisedPath, err)
	}
	return string(original), string(revised), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
