// Command isam is a thin command-line harness over the indexed-sequential
// storage engine, in the shape of the teacher project's cmd/server/main.go:
// parse a config path, load it, dispatch one subcommand, exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mateuszbauer/indexed-sequential-files/internal/config"
	"github.com/mateuszbauer/indexed-sequential-files/internal/isam"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to a YAML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("usage: isam [-config path] <init|add|get|update|delete|print|reorganize> [args...]")
	}

	if err := run(cfg, args[0], args[1:]); err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func run(cfg *config.Config, cmd string, args []string) error {
	indexPath := cfg.Storage.IndexFile
	dataPath := cfg.Storage.DataFile

	switch cmd {
	case "init":
		_, err := isam.Init(indexPath, dataPath)
		return err

	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: add <key> [payload]")
		}
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		rec, err := parseRecord(args)
		if err != nil {
			return err
		}
		ops, err := s.Add(rec)
		fmt.Printf("disk ops: %d\n", ops)
		return err

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: get <key>")
		}
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		rec, err := s.Get(key)
		if err != nil {
			return err
		}
		fmt.Printf("key=%d payload=%q\n", rec.Key, recordPayload(rec))
		return nil

	case "update":
		if len(args) < 1 {
			return fmt.Errorf("usage: update <key> [payload]")
		}
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		rec, err := parseRecord(args)
		if err != nil {
			return err
		}
		ops, err := s.Update(rec)
		fmt.Printf("disk ops: %d\n", ops)
		return err

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <key>")
		}
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		ops, err := s.Delete(key)
		fmt.Printf("disk ops: %d\n", ops)
		return err

	case "print":
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		s.PrintDataFile(os.Stdout)
		return nil

	case "reorganize":
		s, err := isam.Open(indexPath, dataPath)
		if err != nil {
			return err
		}
		return s.Reorganize()

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseKey(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid key %q: %w", s, err)
	}
	return int32(v), nil
}

func parseRecord(args []string) (isam.Record, error) {
	key, err := parseKey(args[0])
	if err != nil {
		return isam.Record{}, err
	}
	var payload string
	if len(args) > 1 {
		payload = args[1]
	}
	rec := isam.Record{Key: key}
	copy(rec.Numbers[:], payload)
	return rec, nil
}

func recordPayload(r isam.Record) string {
	n := 0
	for n < len(r.Numbers) && r.Numbers[n] != 0 {
		n++
	}
	return string(r.Numbers[:n])
}
