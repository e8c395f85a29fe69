package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"btreeidx/internal/btreeindex"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <relation> <attr-offset> <attr-type>",
	Short: "Print an index's meta page and walk its node structure",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("attr-offset: %w", err)
		}
		attrType, err := parseDatatype(args[2])
		if err != nil {
			return err
		}

		idx, err := btreeindex.New(cfg.DataDir, args[0], int32(offset), attrType, bufMgr, nil, log)
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Printf("relation=%s offset=%d type=%s root=%d pages=%d\n",
			idx.RelationName(), idx.AttrByteOffset(), idx.AttrType(), idx.RootPageNum(), idx.NumPages())
		return idx.Dump(os.Stdout)
	},
}
