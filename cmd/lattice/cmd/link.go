package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-search/lattice/internal/domain/automata"
)

var linkModeName string

var linkCmd = &cobra.Command{
	Use:   "link [file]",
	Short: "Rewrite matched terms in a document as links",
	Long:  "Reads the file (or stdin when omitted) and rewrites every matched term according to --mode.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseLinkMode(linkModeName)
		if err != nil {
			return fail(err)
		}
		cfg, rc, err := loadConfig()
		if err != nil {
			return fail(err)
		}
		store, err := openStore(cfg)
		if err != nil {
			return fail(err)
		}
		defer store.Close()

		role, err := loadOrBuildRole(cmd.Context(), cfg, rc, store)
		if err != nil {
			return fail(err)
		}

		var text []byte
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
		} else {
			text, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fail(err)
		}

		fmt.Print(role.Automaton().ReplaceMatches(string(text), mode))
		return nil
	},
}

func parseLinkMode(name string) (automata.LinkMode, error) {
	switch name {
	case "plain":
		return automata.PlainText, nil
	case "markdown":
		return automata.MarkdownLinks, nil
	case "html":
		return automata.HTMLLinks, nil
	case "wiki":
		return automata.WikiLinks, nil
	}
	return automata.PlainText, fmt.Errorf("unknown link mode %q (want plain, markdown, html, or wiki)", name)
}

func init() {
	linkCmd.Flags().StringVarP(&linkModeName, "mode", "m", "markdown", "link style: plain, markdown, html, wiki")
}
