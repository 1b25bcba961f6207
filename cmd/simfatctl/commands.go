package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retrofs/simfat/fat"
)

var commandTable = map[string]func(r *repl, rest string) error{
	"touch":    cmdTouch,
	"ls":       cmdLs,
	"rm":       cmdDelete,
	"delete":   cmdDelete,
	"write":    cmdWrite,
	"apfile":   cmdAppend,
	"read":     cmdRead,
	"tcate":    cmdTruncate,
	"truncate": cmdTruncate,
	"mkdir":    cmdMkdir,
	"cd":       cmdCd,
	"rname":    cmdRename,
	"move":     cmdMove,
	"rblock":   cmdReadBlock,
	"wblock":   cmdWriteBlock,
	"info":     cmdInfo,
	"part":     cmdPartition,
	"help":     cmdHelp,
}

var errMissingArgs = errors.New("missing arguments")

func cmdTouch(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	return r.vol.Create(rest, nil)
}

func cmdLs(r *repl, _ string) error {
	listing := r.vol.List()
	if len(listing.Directories) == 0 && len(listing.Files) == 0 {
		fmt.Fprintln(r.out, "No directories. No files.")
		return nil
	}
	for _, d := range listing.Directories {
		fmt.Fprintf(r.out, "%s/\n", d)
	}
	for _, f := range listing.Files {
		fmt.Fprintf(r.out, "%-20s %8d bytes\n", f.Name, f.Size)
	}
	return nil
}

func cmdDelete(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	return r.vol.Delete(rest)
}

func cmdWrite(r *repl, rest string) error {
	name, content, err := splitNameAndContent(rest)
	if err != nil {
		return err
	}
	return r.vol.Write(name, []byte(content))
}

func cmdAppend(r *repl, rest string) error {
	name, content, err := splitNameAndContent(rest)
	if err != nil {
		return err
	}
	return r.vol.Append(name, []byte(content))
}

func cmdRead(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	content, err := r.vol.Read(rest)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, string(content))
	return nil
}

func cmdTruncate(r *repl, rest string) error {
	name, sizeStr, err := splitTwo(rest)
	if err != nil {
		return err
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	return r.vol.Truncate(name, size)
}

func cmdMkdir(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	return r.vol.Mkdir(rest)
}

func cmdCd(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	return r.vol.Cd(rest)
}

func cmdRename(r *repl, rest string) error {
	oldName, newName, err := splitTwo(rest)
	if err != nil {
		return err
	}
	return r.vol.Rename(oldName, newName)
}

func cmdMove(r *repl, rest string) error {
	fileName, dirName, err := splitTwo(rest)
	if err != nil {
		return err
	}
	return r.vol.Move(fileName, dirName)
}

func cmdReadBlock(r *repl, rest string) error {
	idx, err := parseBlockIndex(rest)
	if err != nil {
		return err
	}
	dump, err := r.vol.ReadBlock(idx)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "block %d (%d free trailing bytes):\n", dump.Index, dump.FreeBytes)
	fmt.Fprint(r.out, fat.DumpBlock(dump.Content, r.bytesPerRow))
	return nil
}

func cmdWriteBlock(r *repl, rest string) error {
	idxStr, content, err := splitTwo(rest)
	if err != nil {
		return err
	}
	idx, err := parseBlockIndex(idxStr)
	if err != nil {
		return err
	}
	return r.vol.WriteBlock(idx, []byte(content))
}

func cmdInfo(r *repl, rest string) error {
	if rest == "" {
		return errMissingArgs
	}
	info, err := r.vol.Stat(rest)
	if err != nil {
		return err
	}
	switch info.Kind {
	case fat.KindDirectory:
		fmt.Fprintf(r.out, "%s: directory, %d entries\n", info.Name, info.ChildCount)
	default:
		fmt.Fprintf(r.out, "%s: file, %d bytes, start block %d\n", info.Name, info.Size, info.StartBlock)
		if !info.CreatedAt.IsZero() {
			fmt.Fprintf(r.out, "  created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if ranges, err := r.vol.DiskRangesOf(rest); err == nil {
			fmt.Fprintf(r.out, "  blocks: %s\n", formatDiskRanges(ranges))
		}
	}
	return nil
}

func formatDiskRanges(ranges []fat.DiskRange) string {
	if len(ranges) == 0 {
		return "none"
	}
	out := ""
	for i, r := range ranges {
		if i > 0 {
			out += ", "
		}
		if r.Start == r.End {
			out += fmt.Sprintf("%d", r.Start)
		} else {
			out += fmt.Sprintf("%d-%d", r.Start, r.End)
		}
	}
	return out
}

func cmdPartition(r *repl, _ string) error {
	return r.vol.Partition()
}

func cmdHelp(r *repl, _ string) error {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	fmt.Fprintln(r.out, strings.Join(names, ", ")+", exit")
	return nil
}

func splitTwo(rest string) (first, second string, err error) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errMissingArgs
	}
	return parts[0], strings.TrimSpace(parts[1]), nil
}

func splitNameAndContent(rest string) (name, content string, err error) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) == 0 || parts[0] == "" {
		return "", "", errMissingArgs
	}
	name = parts[0]
	if len(parts) == 2 {
		content = parts[1]
	}
	return name, content, nil
}

func parseBlockIndex(s string) (int32, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid block index %q: %w", s, err)
	}
	return int32(n), nil
}
