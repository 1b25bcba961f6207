// Command simfatctl is the line-oriented REPL that drives a fat.Volume:
// tokenization and dispatch only, no business logic of its own.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/retrofs/simfat/fat"
	"github.com/retrofs/simfat/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	sessionID := uuid.New()
	log := logrus.WithField("session", sessionID.String())

	vol, err := fat.Mount(fat.MountOptions{Path: opts.Path, Logger: log})
	if err != nil {
		fmt.Fprintln(os.Stderr, "simfatctl: cannot mount volume:", err)
		return 1
	}
	defer vol.Close()

	if opts.Format {
		if err := vol.Partition(); err != nil {
			fmt.Fprintln(os.Stderr, "simfatctl: cannot reformat volume:", err)
			return 1
		}
	}

	r := &repl{
		vol:         vol,
		out:         bufio.NewWriter(os.Stdout),
		bytesPerRow: opts.BytesPerRow,
	}
	defer r.out.Flush()

	return r.run(bufio.NewScanner(os.Stdin))
}
