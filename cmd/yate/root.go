package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"yate/internal/buffer"
	"yate/internal/config"
	"yate/internal/editor"
	"yate/internal/input"
	"yate/internal/log"
	"yate/internal/storage"
	"yate/internal/term"
)

const (
	helpText     = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"
	clearAndHome = "\x1b[2J\x1b[H"
)

type rootOptions struct {
	configFile string
	recent     bool
	lastDir    bool
}

func newRootCmd(version string, stdin, stdout *os.File) *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "yate [file]",
		Short:         "A small terminal text editor",
		Long:          `yate edits one file at a time in a raw-mode terminal. Ctrl-S saves, Ctrl-F searches and Ctrl-Q quits.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ~/.config/yate/config.yaml)")
	cmd.Flags().Bool("debug", false, "write a debug log to the configured log file")
	cmd.Flags().BoolVar(&opts.recent, "recent", false, "print recently edited files and exit")
	cmd.Flags().BoolVar(&opts.lastDir, "last-dir", false, "print the directory of the last edited file and exit")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		_ = v.BindPFlag("debug", cmd.Flags().Lookup("debug"))
		cfg, err := config.Load(v, opts.configFile)
		if err != nil {
			return err
		}

		if cfg.Debug {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			closeLog, err := log.Init(cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()
			log.SetMinLevel(level)
		}
		log.Info(log.CatConfig, "starting", "version", version, "config", v.ConfigFileUsed())

		hist, err := openHistory(cfg)
		if opts.recent || opts.lastDir {
			if err != nil {
				return err
			}
			if opts.lastDir {
				return printLastDir(cmd.OutOrStdout(), hist)
			}
			return printRecent(cmd.OutOrStdout(), hist)
		}
		if err != nil {
			log.ErrorErr(log.CatStorage, "history disabled", err, "path", cfg.StateFile)
			hist = nil
		}

		var file string
		if len(args) == 1 {
			file = args[0]
		}
		return runEditor(stdin, stdout, cfg, hist, version, file)
	}
	return cmd
}

// openHistory returns nil without error when the state file is disabled.
func openHistory(cfg config.Config) (*storage.History, error) {
	if cfg.StateFile == "" {
		return nil, nil
	}
	return storage.OpenHistory(nil, cfg.StateFile, cfg.RecentLimit)
}

func printRecent(w io.Writer, hist *storage.History) error {
	if hist == nil {
		return nil
	}
	for _, p := range hist.Recent() {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// printLastDir prints nothing when no file has been recorded yet, so
// `cd "$(yate --last-dir)"` falls back to the home directory.
func printLastDir(w io.Writer, hist *storage.History) error {
	if hist == nil || hist.LastDir() == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, hist.LastDir())
	return err
}

// openDocument loads name into a new document. A file that does not exist
// yet gives an empty document carrying the name, reported as created.
func openDocument(store *storage.Store, name string, tabStop int) (doc *buffer.Document, created bool, err error) {
	doc = buffer.New(tabStop)
	if name == "" {
		return doc, false, nil
	}
	doc.SetFilename(name)
	lines, err := store.Load(name)
	if errors.Is(err, os.ErrNotExist) {
		log.Info(log.CatStorage, "new file", "path", name)
		return doc, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	doc.Load(lines)
	return doc, false, nil
}

func startupStatus(name string, created bool) *editor.MessageBuilder {
	if created {
		return editor.Msg("").Quoted(name).Str(" [New File]")
	}
	return editor.Msg(helpText)
}

// runEditor owns the terminal for the whole session. Raw mode is undone on
// every way out, and a failed session clears the screen first so the error
// is printed on a clean terminal.
func runEditor(stdin, stdout *os.File, cfg config.Config, hist *storage.History, version, file string) (err error) {
	tty, err := term.Open(stdin, stdout)
	if err != nil {
		return err
	}
	if err := tty.EnableRawMode(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatEditor, "panic", "value", r)
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
		if err != nil {
			_, _ = tty.Write([]byte(clearAndHome))
			log.ErrorErr(log.CatEditor, "session failed", err)
		}
		if rerr := tty.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	rows, cols, err := tty.Size()
	if err != nil {
		return err
	}

	store := storage.New(nil)
	doc, created, err := openDocument(store, file, cfg.TabStop)
	if err != nil {
		return err
	}

	opts := []editor.Option{
		editor.WithDocument(doc),
		editor.WithQuitTimes(cfg.QuitTimes),
		editor.WithMessageTimeout(cfg.MessageTimeout),
		editor.WithVersion(version),
	}
	if hist != nil {
		opts = append(opts, editor.WithHistory(hist))
		if file != "" && !created {
			if herr := hist.Record(doc.Filename()); herr != nil {
				log.ErrorErr(log.CatStorage, "record history", herr, "path", doc.Filename())
			}
		}
	}

	ed := editor.New(input.NewDecoder(tty), tty, store, rows, cols, opts...)
	ed.SetStatus(startupStatus(file, created))
	log.Debug(log.CatEditor, "session start", "file", file, "rows", rows, "cols", cols)
	return ed.Run()
}
