package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"btreeidx/internal/btreeindex"
	"btreeidx/internal/relation"
)

var buildCmd = &cobra.Command{
	Use:   "build <relation> <attr-offset> <attr-type> <record-file> <record-size>",
	Short: "Build an index over one attribute of a fixed-width relation file",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("attr-offset: %w", err)
		}
		attrType, err := parseDatatype(args[2])
		if err != nil {
			return err
		}
		recordSize, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("record-size: %w", err)
		}

		scanner, err := relation.OpenFixedWidth(args[3], recordSize)
		if err != nil {
			return err
		}
		defer scanner.Close()

		idx, err := btreeindex.New(cfg.DataDir, args[0], int32(offset), attrType, bufMgr, scanner, log)
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Printf("built index for %s.%d in %s\n", args[0], offset, cfg.DataDir)
		return nil
	},
}
