package filter

import (
	"fmt"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/datazip-inc/cityfilter/utils/typeutils"
)

// Records makes one pass over table, derives each row's code from column and
// keeps the rows pred accepts. Kept rows are the input records themselves,
// so the result has exactly the input's columns.
func Records(table *types.Table, column string, pred Predicate) (*types.Table, types.Summary, error) {
	summary := types.Summary{Input: table.Len()}

	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, summary, fmt.Errorf("column [%s] not found in header", column)
	}

	kept := make([]types.Record, 0, table.Len())
	for i, record := range table.Rows {
		code := typeutils.NormalizeCode(record.Cell(idx))
		if !code.Valid() {
			summary.Unparsed++
		}

		if !pred(code) {
			continue
		}
		logger.Debugf("row[%d] kept: %s=%q", i, column, code.Str)
		kept = append(kept, record)
		count(&summary, code)
	}
	summary.Kept = len(kept)

	logger.Debugf("filter finished: input=%d kept=%d unparsed=%d", summary.Input, summary.Kept, summary.Unparsed)
	return table.WithRows(kept), summary, nil
}

func count(summary *types.Summary, code types.ADCode) {
	if IsPrefecture(code) {
		summary.Prefecture++
	}
	if IsMunicipality(code) {
		summary.Municipality++
	}
	if IsSpecialRegion(code) {
		summary.SpecialRegion++
	}
}
