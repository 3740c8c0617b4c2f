package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tagsearch/internal/log"
	"github.com/zjrosen/tagsearch/internal/mode/shared"
	"github.com/zjrosen/tagsearch/internal/presentation"
	"github.com/zjrosen/tagsearch/internal/searches/domain"
	"github.com/zjrosen/tagsearch/internal/searchurl"
)

// Replaced in tests.
var (
	cliOpener    shared.Opener    = shared.SystemOpener{}
	cliClipboard shared.Clipboard = shared.SystemClipboard{}
)

var (
	jsonOutput bool
	assumeYes  bool
	copyShare  bool
)

// withSession opens the store for the duration of fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, s)
	if closeErr := s.Close(ctx); closeErr != nil && runErr == nil {
		return fmt.Errorf("closing store: %w", closeErr)
	}
	return runErr
}

// lookup returns the saved search for tag or a NotFoundError.
func lookup(s *session, tag string) (presentation.SearchDTO, error) {
	query, ok := s.reg.GetQuery(tag)
	if !ok {
		return presentation.SearchDTO{}, &domain.NotFoundError{Tag: tag}
	}
	return presentation.FromDomainSearch(domain.SavedSearch{Tag: tag, Query: query}, cfg.Search.URL), nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches in tag order",
	Long: `List saved searches sorted case-insensitively by tag.

Examples:
  tagsearch list
  tagsearch list --json | jq '.[].url'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ context.Context, s *session) error {
			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			dtos := presentation.FromDomainSearches(s.reg.Searches(), cfg.Search.URL)
			if jsonOutput {
				return formatter.FormatSearches(dtos)
			}
			if len(dtos) == 0 {
				_, err := fmt.Fprintln(cmd.ErrOrStderr(), "No saved searches. Add one with: tagsearch save <tag> <query>")
				return err
			}
			return formatter.FormatSearchesText(dtos)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <tag>",
	Short: "Show a saved search and its results URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ context.Context, s *session) error {
			dto, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return presentation.NewFormatter(cmd.OutOrStdout()).FormatSearch(dto)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tag:   %s\nQuery: %s\nURL:   %s\n", dto.Tag, dto.Query, dto.URL)
			return err
		})
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <tag> <query>...",
	Short: "Save a query under a tag, replacing any query already saved there",
	Long: `Save a query under a tag. Remaining arguments are joined with spaces
to form the query.

Examples:
  tagsearch save news golang release
  tagsearch save "world news" "#breaking"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, query := args[0], strings.Join(args[1:], " ")
		return withSession(cmd, func(ctx context.Context, s *session) error {
			res, err := s.reg.Save(ctx, tag, query)
			if err != nil {
				return err
			}
			verb := "Updated"
			if res.Created {
				verb = "Saved"
			}
			log.Info(log.CatCLI, "Saved search", "tag", tag, "created", res.Created)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", verb, tag)
			return err
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <tag>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved search",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		return withSession(cmd, func(ctx context.Context, s *session) error {
			if _, ok := s.reg.GetQuery(tag); !ok {
				return &domain.NotFoundError{Tag: tag}
			}
			if !assumeYes && cfg.UI.ConfirmDelete {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Are you sure you want to delete the search %q?", tag))
				if err != nil {
					return err
				}
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return err
				}
			}
			if err := s.reg.Delete(ctx, tag); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", tag)
			return err
		})
	},
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

var openCmd = &cobra.Command{
	Use:   "open <tag>",
	Short: "Open the results of a saved search in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session) error {
			dto, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			if err := cliOpener.Open(ctx, dto.URL); err != nil {
				return fmt.Errorf("opening %s: %w", dto.URL, err)
			}
			return nil
		})
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <tag>",
	Short: "Print the share text for a saved search",
	Long: `Print the share text (subject line and message with the results URL)
for a saved search. With --copy the text also goes to the clipboard.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ context.Context, s *session) error {
			dto, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			text := searchurl.NewShare(cfg.Search.ShareSubject, cfg.Search.ShareMessage, dto.URL).Text()
			if copyShare {
				if err := cliClipboard.Copy(text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		})
	},
}

var urlCmd = &cobra.Command{
	Use:   "url <tag>",
	Short: "Print the results URL of a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ context.Context, s *session) error {
			dto, err := lookup(s, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dto.URL)
			return err
		})
	},
}

func init() {
	listCmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	showCmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	shareCmd.Flags().BoolVar(&copyShare, "copy", false, "also copy the text to the clipboard")

	rootCmd.AddCommand(listCmd, showCmd, saveCmd, deleteCmd, openCmd, shareCmd, urlCmd)
}
