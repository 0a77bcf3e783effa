package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/g1tyx/fairies-and-unicorns/internal/config"
	"github.com/g1tyx/fairies-and-unicorns/internal/econ"
	"github.com/g1tyx/fairies-and-unicorns/internal/game"
	"github.com/g1tyx/fairies-and-unicorns/internal/ops"
	"github.com/g1tyx/fairies-and-unicorns/internal/producer"
	"github.com/g1tyx/fairies-and-unicorns/internal/save"
)

func main() {
	root := &cobra.Command{
		Use:   "fairies-ops",
		Short: "Operational tooling for a fairies-and-unicorns world",
		Long: `Backs up and restores the data directory, inspects and exports
save files, and replays offline time without starting the server.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("data-dir", "data", "path to data directory")
	root.PersistentFlags().String("save-file", "save.json", "save file name inside the data directory")
	root.PersistentFlags().String("difficulty", "", "balance preset to interpret the save with (casual, hard)")

	root.AddCommand(backupCmd(), restoreCmd(), drillCmd(), inspectCmd(), simulateCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory as a .tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				ts := time.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "fairies-"+ts+".tar.gz")
			}
			if err := ops.BackupDataDir(dataDir, out); err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().String("out", "", "output archive path (.tar.gz)")
	return cmd
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, _ := cmd.Flags().GetString("archive")
			target, _ := cmd.Flags().GetString("target-dir")
			if archive == "" {
				return fmt.Errorf("archive is required")
			}
			return ops.RestoreDataDir(archive, target)
		},
	}
	cmd.Flags().String("archive", "", "input backup archive (.tar.gz)")
	cmd.Flags().String("target-dir", "data-restored", "restore target directory")
	return cmd
}

// drillCmd backs up, restores, and diffs content digests so backups are
// proven restorable before they are needed.
func drillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Backup then restore into a scratch directory and verify digests match",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			workDir, _ := cmd.Flags().GetString("work-dir")

			if err := os.MkdirAll(workDir, 0o755); err != nil {
				return err
			}
			ts := time.Now().UTC().Format("20060102T150405Z")
			archive := filepath.Join(workDir, "fairies-drill-"+ts+".tar.gz")
			restoreDir := filepath.Join(workDir, "fairies-drill-restore-"+ts)

			if err := ops.BackupDataDir(dataDir, archive); err != nil {
				return err
			}
			if err := ops.RestoreDataDir(archive, restoreDir); err != nil {
				return err
			}

			srcDigest, err := dirDigest(dataDir)
			if err != nil {
				return err
			}
			restoreDigest, err := dirDigest(restoreDir)
			if err != nil {
				return err
			}
			if srcDigest != restoreDigest {
				return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
			}

			fmt.Println("backup:", archive)
			fmt.Println("restored:", restoreDir)
			fmt.Println("digest:", srcDigest)
			return nil
		},
	}
	cmd.Flags().String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of the save file",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, savedAt, err := loadState(cmd)
			if err != nil {
				return err
			}

			title := color.New(color.FgCyan, color.Bold)
			title.Printf("World saved %s (%d saves, %d ascensions)\n\n",
				savedAt.UTC().Format(time.RFC3339), st.Stats.SaveCount, st.Ascension.TotalAscensions)

			res := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Resource", "Amount"}),
			)
			for _, row := range [][2]string{
				{"Fairies", econ.FormatAmount(st.Fairies.Amount)},
				{"Unicorns", econ.FormatAmount(st.Unicorns.Amount)},
				{"Glitter", econ.FormatAmount(st.Glitter)},
				{"Stardust", econ.FormatAmount(st.Stardust)},
				{"Gold", econ.FormatAmount(st.Gold)},
				{"Rainbows", econ.FormatAmount(st.Rainbows.Amount)},
				{"Royal Essence", econ.FormatAmount(st.Ascension.RoyalEssence)},
			} {
				res.Append([]string{row[0], row[1]})
			}
			res.Render()

			fmt.Println()
			prod := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Family", "Tier", "Owned", "Next Cost"}),
			)
			for _, row := range producerRows(st) {
				prod.Append([]string{row.Family, row.Name,
					econ.FormatQuantity(row.Amount), econ.FormatAmount(row.Cost)})
			}
			prod.Render()

			fmt.Println()
			fmt.Println("Queen distance left:", econ.FormatAmount(st.Queen.Distance))
			fmt.Println("Time played:", econ.FormatPlayTime(st.Stats.TotalTimePlayed))
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay offline time against the save without touching it",
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, _ := cmd.Flags().GetFloat64("hours")
			if hours <= 0 {
				return fmt.Errorf("hours must be positive")
			}

			st, savedAt, err := loadState(cmd)
			if err != nil {
				return err
			}
			engine := game.NewEngine(balanceFrom(cmd), game.RealClock{})

			now := savedAt.Add(time.Duration(hours * float64(time.Hour)))
			gains, ran := engine.OfflineProgress(st, now)
			if !ran {
				fmt.Println("absence too short, nothing to replay")
				return nil
			}

			color.New(color.FgGreen, color.Bold).Printf("Away %s\n\n", gains.Duration)
			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Gained", "Amount"}),
			)
			for _, row := range [][2]string{
				{"Fairies", econ.FormatAmount(gains.Fairies)},
				{"Unicorns", econ.FormatAmount(gains.Unicorns)},
				{"Glitter", econ.FormatAmount(gains.Glitter)},
				{"Stardust", econ.FormatAmount(gains.Stardust)},
				{"Gold", econ.FormatAmount(gains.Gold)},
				{"Rainbows", econ.FormatAmount(gains.Rainbows)},
				{"Queen distance", econ.FormatAmount(gains.QueenDistance)},
			} {
				table.Append([]string{row[0], row[1]})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Float64("hours", 8, "hours of absence to replay")
	return cmd
}

// producerRow is the CSV shape for one owned producer tier.
type producerRow struct {
	Family     string  `csv:"family"`
	Name       string  `csv:"name"`
	Amount     float64 `csv:"amount"`
	Cost       float64 `csv:"next_cost"`
	Production float64 `csv:"production_per_sec"`
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the save's producer tiers to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			st, _, err := loadState(cmd)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := gocsv.Marshal(producerRows(st), f); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().String("out", "producers.csv", "output CSV path")
	return cmd
}

func producerRows(st *game.State) []producerRow {
	rows := []producerRow{}
	families := []struct {
		name  string
		tiers []producer.Producer
	}{
		{"glitter", st.GlitterProducers},
		{"stardust", st.StardustProducers},
		{"cloud", st.CloudProducers},
		{"accelerator", st.QueenAccelerators},
		{"leprechaun", st.LeprechaunProducers},
	}
	for _, fam := range families {
		for _, t := range fam.tiers {
			rows = append(rows, producerRow{
				Family:     fam.name,
				Name:       t.Name,
				Amount:     t.Amount,
				Cost:       t.Cost,
				Production: t.Production,
			})
		}
	}
	return rows
}

// loadState reads and merges the save file; the returned time is when
// the world was last saved.
func loadState(cmd *cobra.Command) (*game.State, time.Time, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	saveFile, _ := cmd.Flags().GetString("save-file")

	store, err := save.NewStore(dataDir, saveFile)
	if err != nil {
		return nil, time.Time{}, err
	}
	doc, ok, err := store.Load()
	if err != nil {
		return nil, time.Time{}, err
	}
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no save file at %s", store.Path())
	}

	now := time.Now()
	st, err := doc.Merge(balanceFrom(cmd), now)
	if err != nil {
		return nil, time.Time{}, err
	}

	savedAt := now
	if doc.LastSaveTime != nil {
		savedAt = *doc.LastSaveTime
		st.LastSaveTime = savedAt
	}
	return st, savedAt, nil
}

func balanceFrom(cmd *cobra.Command) config.Balance {
	difficulty, _ := cmd.Flags().GetString("difficulty")
	cfg := &config.Config{Game: config.GameConfig{Difficulty: difficulty}}
	cfg.ApplyDefaults()
	return cfg.Balance()
}

func dirDigest(root string) (string, error) {
	root = filepath.Clean(root)
	entries := []string{}
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	}); err != nil {
		return "", err
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, rel := range entries {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
