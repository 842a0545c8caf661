// Command diskfs is the interactive front end for the flat file system and
// its sort engine. Argument parsing, help text and the REPL loop itself are
// explicitly out of scope for the core (see SPEC_FULL.md §1/§6) — this is
// the thinnest dispatcher that can drive the six verbs.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/agar64/University-OS-Assignment02/internal/fs"
	"github.com/agar64/University-OS-Assignment02/internal/sortengine"
)

func main() {
	imagePath := "disk.img"
	if len(os.Args) > 1 {
		imagePath = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fsys, err := fs.Open(imagePath, nil, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer fsys.Close()

	engine := sortengine.New(fsys, nil, logger)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if err := dispatch(fsys, engine, fields); err != nil {
			if err == errQuit {
				return
			}
			fmt.Println("error:", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func dispatch(fsys *fs.FS, engine *sortengine.Engine, fields []string) error {
	switch fields[0] {
	case "create":
		if len(fields) != 3 {
			return fmt.Errorf("usage: create <name> <count>")
		}
		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		return fsys.Create(fields[1], count)

	case "delete":
		if len(fields) != 2 {
			return fmt.Errorf("usage: delete <name>")
		}
		return fsys.Delete(fields[1])

	case "list":
		entries, totals := fsys.List()
		fmt.Printf("%-32s %-15s\n", "name", "size (bytes)")
		for _, e := range entries {
			fmt.Printf("%-32s %-15d\n", e.Name, e.SizeBytes)
		}
		fmt.Printf("files: %d, disk: %d bytes, free: %d bytes\n",
			totals.FileCount, totals.DiskSize, totals.FreeBytes)
		return nil

	case "read":
		if len(fields) != 4 {
			return fmt.Errorf("usage: read <name> <lo> <hi>")
		}
		lo, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		hi, err := strconv.Atoi(fields[3])
		if err != nil {
			return err
		}
		values, err := fsys.Read(fields[1], lo, hi)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Printf("%d ", v)
		}
		fmt.Println()
		return nil

	case "concatenate":
		if len(fields) != 3 {
			return fmt.Errorf("usage: concatenate <name1> <name2>")
		}
		return fsys.Concatenate(fields[1], fields[2])

	case "sort":
		if len(fields) != 2 {
			return fmt.Errorf("usage: sort <name>")
		}
		return engine.Sort(fields[1])

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command: %s", fields[0])
	}
}
