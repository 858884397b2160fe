package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/openlmtools/lmimport/internal/appdir"
	"github.com/openlmtools/lmimport/internal/config"
	"github.com/openlmtools/lmimport/internal/convert"
	"github.com/openlmtools/lmimport/internal/export"
	"github.com/openlmtools/lmimport/internal/models"
	"github.com/openlmtools/lmimport/internal/output"
)

var (
	convID      string
	keywords    []string
	clean       bool
	outDir      string
	modelName   string
	configPath  string
	verbose     bool
	assumeYes   bool
	temperature float64
)

func newConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <conversations.json>",
		Short: "Convert an export into LM Studio conversation files",
		Long: `Convert a conversations.json export into LM Studio conversation files.

One <id>.conversation.json file is written per conversation, named by a
strictly increasing millisecond identifier so the files sort in source
order. Conversations whose title starts with $tag$ land in a subfolder
named after the tag.

Without --outdir, files go to the LM Studio conversations directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringVar(&convID, "id", "", "Only convert the conversation with this id")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "Only convert conversations mentioning one of these keywords (title or any message)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory before converting")
	cmd.Flags().StringVarP(&outDir, "outdir", "o", "", "Output directory (default: LM Studio conversations directory)")
	cmd.Flags().StringVar(&modelName, "model", "", "Model name to stamp into converted files")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to an lmimport.yaml defaults file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-conversation detail")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the --clean confirmation prompt")
	cmd.Flags().Float64Var(&temperature, "temperature", convert.DefaultTemperature, "Temperature for the per-chat prediction config")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	exportPath := args[0]

	cfg, err := loadConfig(configPath, exportPath)
	if err != nil {
		return err
	}

	root := outDir
	if root == "" {
		root = cfg.OutDir
	}
	if root == "" {
		if root, err = appdir.ConversationsDir(); err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}
	}

	model := modelName
	if model == "" {
		model = cfg.Model
	}
	// An explicit --temperature beats the config file, even at zero.
	temp := temperature
	if !cmd.Flags().Changed("temperature") && cfg.Temperature != 0 {
		temp = cfg.Temperature
	}

	convs, err := export.Load(exportPath)
	if err != nil {
		return err
	}

	writer := &output.DirWriter{Root: root}
	if clean {
		ok, err := confirmClean(root)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("aborted")
		}
		if err := writer.Clean(); err != nil {
			return err
		}
	}

	driver := &convert.Driver{
		Transformer: convert.NewTransformer(convert.Options{ModelName: model, Temperature: temp}),
		Filter:      convert.Filter{ID: convID, Keywords: keywords},
		Writer:      writer,
	}
	summary := driver.Run(convs)

	printSummary(cmd, summary, root)
	return nil
}

func loadConfig(explicit, exportPath string) (*config.Config, error) {
	path, err := config.Find(explicit, exportPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &config.Config{}, nil
	}
	return config.Load(path)
}

// confirmClean asks before removing an existing output root. Non-TTY
// runs (scripts, CI) and --yes skip the prompt.
func confirmClean(root string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}

	ok := false
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Remove %s and everything under it?", root)).
		Value(&ok)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return ok, nil
}

func printSummary(cmd *cobra.Command, summary models.Summary, root string) {
	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.OutOrStdout(), "Converted %d conversation(s) to %s (%d skipped, %d failed)\n",
		summary.Processed, root, summary.Skipped, summary.Failed)

	if verbose {
		for _, f := range summary.Failures {
			p.Fprintf(cmd.OutOrStdout(), "  failed: %s (%s): %s\n", f.Title, f.ConversationID, f.Err)
		}
	}
}
