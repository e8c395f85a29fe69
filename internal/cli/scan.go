package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"btreeidx/internal/btreeindex"
)

var scanCmd = &cobra.Command{
	Use:   "scan <relation> <attr-offset> <attr-type> <low-op> <low> <high-op> <high>",
	Short: "Run a bounded range scan against an existing index and print matches",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("attr-offset: %w", err)
		}
		attrType, err := parseDatatype(args[2])
		if err != nil {
			return err
		}
		lowOp, err := parseOperator(args[3])
		if err != nil {
			return err
		}
		lowVal, err := parseKey(attrType, args[4])
		if err != nil {
			return fmt.Errorf("low: %w", err)
		}
		highOp, err := parseOperator(args[5])
		if err != nil {
			return err
		}
		highVal, err := parseKey(attrType, args[6])
		if err != nil {
			return fmt.Errorf("high: %w", err)
		}

		idx, err := btreeindex.New(cfg.DataDir, args[0], int32(offset), attrType, bufMgr, nil, log)
		if err != nil {
			return err
		}
		defer idx.Close()

		if err := idx.StartScan(lowVal, lowOp, highVal, highOp); err != nil {
			return err
		}

		count := 0
		for {
			key, r, err := idx.ScanNext()
			if err == btreeindex.ErrIndexScanCompleted {
				break
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s\t(%d,%d)\n", key, r.PageNum, r.SlotNum)
			count++
		}
		fmt.Printf("%d matching entries\n", count)
		return nil
	},
}
