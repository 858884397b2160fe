package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/openlmtools/lmimport/internal/convert"
	"github.com/openlmtools/lmimport/internal/export"
	"github.com/openlmtools/lmimport/internal/models"
	"github.com/openlmtools/lmimport/internal/title"
	"github.com/openlmtools/lmimport/internal/tree"
)

var (
	inspectID       string
	inspectKeywords []string
	inspectFormat   string
)

const titleColumnWidth = 48

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <conversations.json>",
		Short: "List the conversations in an export without converting",
		Long: `List the conversations in an export: id, routing folder, message count,
last update, and title. The same --id and --keywords filters as convert
apply, so inspect shows exactly what a convert run would process.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().StringVar(&inspectID, "id", "", "Only list the conversation with this id")
	cmd.Flags().StringSliceVar(&inspectKeywords, "keywords", nil, "Only list conversations mentioning one of these keywords")
	cmd.Flags().StringVar(&inspectFormat, "format", "text", "Output format: text | json")

	return cmd
}

type inspectRow struct {
	ID       string `json:"id"`
	Folder   string `json:"folder,omitempty"`
	Title    string `json:"title"`
	Messages int    `json:"messages"`
	Updated  string `json:"updated,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	convs, err := export.Load(args[0])
	if err != nil {
		return err
	}

	filter := convert.Filter{ID: inspectID, Keywords: inspectKeywords}
	var rows []inspectRow
	for _, conv := range convs {
		if !filter.Match(conv) {
			continue
		}
		rows = append(rows, buildInspectRow(conv))
	}

	out := cmd.OutOrStdout()
	if inspectFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Fprintf(out, "%-36s  %-16s  %5s  %-16s  %s\n", "ID", "FOLDER", "MSGS", "UPDATED", "TITLE")
	for _, r := range rows {
		fmt.Fprintf(out, "%-36s  %-16s  %5d  %-16s  %s\n",
			r.ID,
			runewidth.Truncate(r.Folder, 16, "…"),
			r.Messages,
			r.Updated,
			runewidth.Truncate(r.Title, titleColumnWidth, "…"))
	}
	fmt.Fprintf(out, "\n%d conversation(s)\n", len(rows))
	return nil
}

func buildInspectRow(conv models.Conversation) inspectRow {
	rawTitle := conv.Title
	if rawTitle == "" {
		rawTitle = conv.Name
	}
	folder, clean := title.ParseFolderTag(rawTitle)
	if folder != "" {
		folder = title.SanitizeFolder(folder)
	}

	count := 0
	switch {
	case conv.Mapping != nil:
		for node, err := range tree.ActivePath(conv) {
			if err != nil {
				break
			}
			if node.Message != nil && !node.Message.Hidden() {
				count++
			}
		}
	case conv.Messages != nil:
		count = len(conv.Messages)
	}

	updated := ""
	if ts := convert.ToMillis(conv.UpdateTime); conv.UpdateTime > 0 {
		updated = time.UnixMilli(ts).Format("2006-01-02 15:04")
	}

	return inspectRow{
		ID:       conv.ID,
		Folder:   folder,
		Title:    clean,
		Messages: count,
		Updated:  updated,
	}
}
