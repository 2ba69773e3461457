package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/kbfile"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
)

const usage = "json2csv, csv2json, xlsx2json, csv2xlsx, json2xlsx"

func main() {
	var command, in, out string

	flag.StringVar(&command, "cmd", "", "Conversion ("+usage+")")
	flag.StringVar(&in, "in", "", "Input file (defaults to the knowledge file for json2*)")
	flag.StringVar(&out, "out", "", "Output file (defaults to the knowledge file for *2json)")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := run(cfg, command, in, out); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

// conversion is one direction between two interchange formats. A JSON
// target is merged into the existing knowledge file with a backup instead of
// being overwritten.
type conversion struct {
	from, to kbfile.Format
}

var conversions = map[string]conversion{
	"json2csv":  {kbfile.FormatJSON, kbfile.FormatCSV},
	"csv2json":  {kbfile.FormatCSV, kbfile.FormatJSON},
	"xlsx2json": {kbfile.FormatXLSX, kbfile.FormatJSON},
	"csv2xlsx":  {kbfile.FormatCSV, kbfile.FormatXLSX},
	"json2xlsx": {kbfile.FormatJSON, kbfile.FormatXLSX},
}

func run(cfg *config.Config, command, in, out string) error {
	conv, ok := conversions[command]
	if !ok {
		return fmt.Errorf("unknown command %q (use: %s)", command, usage)
	}
	if in == "" {
		if conv.from != kbfile.FormatJSON {
			return fmt.Errorf("-in is required for %s", command)
		}
		in = cfg.KnowledgeFile
	}
	if out == "" {
		if conv.to != kbfile.FormatJSON {
			out = strings.TrimSuffix(in, "."+string(conv.from)) + "." + string(conv.to)
		} else {
			out = cfg.KnowledgeFile
		}
	}

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", in, err)
	}
	defer src.Close()

	entries, issues, err := kbfile.Read(conv.from, src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}
	for _, issue := range issues {
		log.Printf("⚠️  Skipped %s", issue)
	}
	log.Printf("📖 Read %d entries from %s", entries.Len(), in)

	files, err := filestore.New(cfg.BackupsDir)
	if err != nil {
		return err
	}
	if conv.to == kbfile.FormatJSON {
		return mergeInto(files, out, entries)
	}

	// a previous export is kept, like every other data file we replace
	backup, err := files.Backup(out)
	if err != nil {
		return err
	}
	if backup != "" {
		log.Printf("📦 Backed up %s to %s", out, backup)
	}

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := kbfile.Write(conv.to, dst, entries); err != nil {
		dst.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	log.Printf("✅ Wrote %d entries to %s", entries.Len(), out)
	return nil
}

func mergeInto(files *filestore.Files, path string, entries *filestore.OrderedMap[string]) error {
	repo, err := repositories.NewKnowledgeRepo(files, path, nil)
	if err != nil {
		return err
	}
	res, err := repo.Merge(entries)
	if err != nil {
		return err
	}
	log.Printf("✅ Merged into %s: %d added, %d updated, %d total", path, res.Added, res.Updated, res.Total)
	return nil
}
