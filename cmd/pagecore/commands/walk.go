package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagekit/pagecore/cache"
	"github.com/pagekit/pagecore/config"
	"github.com/pagekit/pagecore/logging"
	"github.com/pagekit/pagecore/page"
	"github.com/pagekit/pagecore/paginate"
	"github.com/pagekit/pagecore/snapshot"
)

// NewWalkCommand creates the interactive demo pager
func NewWalkCommand() *cobra.Command {
	var configFile string
	var snapFile string

	cmd := &cobra.Command{
		Use:   "walk [file]",
		Short: "Page through the lines of a text file interactively",
		Long: `Walk pages through a text file with a real paginator: next/prev/jump
navigation, restart, refresh, and snapshot save/load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cleanup, err := logging.StandardLogger().Init(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer cleanup()

			lines, err := readLines(args[0])
			if err != nil {
				return err
			}

			return runWalk(cmd.Context(), lines, cfg.Capacity, cfg.Prefetch, snapFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&snapFile, "snapshot", "s", "pagecore.snapshot.json", "snapshot file path")
	return cmd
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func runWalk(ctx context.Context, lines []string, capacity, prefetch int, snapFile string) error {
	// one trace ID per walk session ties all its log entries together
	ctx, _ = logging.EnsureTraceID(ctx)
	log := logging.StandardLogger()
	log.Infof(ctx, "walking %d lines, capacity %d, prefetch %d", len(lines), capacity, prefetch)

	store := cache.New(
		cache.WithCapacity[string](capacity),
		cache.WithObserver(printState),
		cache.WithLogger[string](logging.StandardLogger()),
	)

	fetch := paginate.FetchFunc[string](func(_ context.Context, p int) ([]string, error) {
		lo := (p - 1) * capacity
		if lo >= len(lines) {
			return nil, nil
		}
		hi := lo + capacity
		if hi > len(lines) {
			hi = len(lines)
		}
		return lines[lo:hi], nil
	})

	pg, err := paginate.New(store, fetch,
		paginate.WithSink[string](logging.StandardLogger()),
		paginate.WithPrefetch[string](prefetch),
	)
	if err != nil {
		return err
	}

	files := snapshot.NewFileStore[string](snapFile)

	fmt.Println("commands: next, prev, jump N, restart, refresh N..., save, load, window, quit")
	if err := pg.Restart(ctx); err != nil {
		return err
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "next":
			err = pg.GoNextPage(ctx)
		case "prev":
			err = pg.GoPreviousPage(ctx)
		case "jump":
			if len(fields) < 2 {
				fmt.Println("usage: jump N")
				continue
			}
			n, convErr := strconv.Atoi(fields[1])
			if convErr != nil {
				fmt.Println("usage: jump N")
				continue
			}
			err = pg.Jump(ctx, paginate.AtPage(n))
		case "restart":
			err = pg.Restart(ctx)
		case "refresh":
			pages := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				n, convErr := strconv.Atoi(f)
				if convErr != nil {
					fmt.Println("usage: refresh N...")
					pages = nil
					break
				}
				pages = append(pages, n)
			}
			if pages == nil {
				continue
			}
			err = pg.Refresh(ctx, pages)
		case "save":
			err = files.Save(store.SaveState())
			if err == nil {
				log.Infof(ctx, "snapshot saved to %s", snapFile)
				fmt.Println("saved to", snapFile)
			}
		case "load":
			var snap *snapshot.Snapshot[string]
			snap, err = files.Load()
			if err == nil {
				err = store.RestoreState(snap, false)
			}
			if err == nil {
				log.Infof(ctx, "snapshot restored from %s", snapFile)
			}
		case "window":
			start, end := store.Window()
			fmt.Printf("window (%d,%d) capacity %d\n", start, end, store.Capacity())
		case "quit", "exit":
			return nil
		default:
			fmt.Println("unknown command:", fields[0])
		}
		if err != nil {
			log.Warnf(ctx, "%s failed: %v", fields[0], err)
			fmt.Println("error:", err)
		}
	}
}

func printState(st page.State[string]) {
	start := ""
	if n := len(st.Items()); n > 0 {
		start = " | " + st.Items()[0]
		if len(start) > 60 {
			start = start[:60] + "..."
		}
	}
	fmt.Printf("[%s] page %d, %d items%s\n", st.Kind(), st.Page(), len(st.Items()), start)
}
