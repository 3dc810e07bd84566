package main

import (
	"fmt"
	"io"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/d0ngw/chanstat/app"
	c "github.com/d0ngw/chanstat/common"
	"github.com/d0ngw/chanstat/prefs"
	"github.com/d0ngw/chanstat/stats"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "chanstat.yaml"

type options struct {
	configPath string
	newThread  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "chanstat",
		Short:         "per-provider usage statistics of viewed threads, sent posts and created threads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigFile, "config file to load")

	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "print the counters of every provider, - for the unsupported ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return printItems(cmd.OutOrStdout(), a.Registry().Items())
			})
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view <provider>",
		Short: "count one viewed thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				a.Registry().IncrementViews(args[0])
				return nil
			})
		},
	}

	postCmd := &cobra.Command{
		Use:   "post <provider>",
		Short: "count one sent post, and one created thread with --new-thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				a.Registry().IncrementPosts(args[0], opts.newThread)
				return nil
			})
		},
	}
	postCmd.Flags().BoolVar(&opts.newThread, "new-thread", false, "the post created a new thread")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "drop the counters of all providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				a.Registry().Clear()
				return nil
			})
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the stored statistics document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return exportDocument(cmd.OutOrStdout(), a.Registry().Document())
			})
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the http service until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, serve)
		},
	}

	rootCmd.AddCommand(itemsCmd, viewCmd, postCmd, clearCmd, exportCmd, serveCmd)
	return rootCmd
}

// withApp 加载配置创建App,执行fn后关闭
func withApp(opts *options, fn func(a *app.App) error) (err error) {
	conf, err := app.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	a, err := app.New(conf)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}

func serve(a *app.App) error {
	if a.HTTP() == nil {
		return fmt.Errorf("no http config")
	}
	if err := a.Start(); err != nil {
		return err
	}
	hook := c.NewShutdownhook(syscall.SIGINT, syscall.SIGTERM)
	c.Infof("serving statistics at %s", a.HTTP().Addr())
	hook.WaitShutdown()
	return nil
}

func formatCounter(v int64) string {
	if v == stats.Unsupported {
		return "-"
	}
	return humanize.Comma(v)
}

func printItems(w io.Writer, items map[string]stats.Item) error {
	providers := make([]string, 0, len(items))
	for provider := range items {
		providers = append(providers, provider)
	}
	sort.Strings(providers)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tVIEWS\tPOSTS\tTHREADS")
	for _, provider := range providers {
		item := items[provider]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", provider,
			formatCounter(item.Views), formatCounter(item.Posts), formatCounter(item.Threads))
	}
	return tw.Flush()
}

func exportDocument(w io.Writer, doc stats.Document) error {
	data, err := prefs.Encode(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
