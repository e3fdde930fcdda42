package db

import (
	"fmt"
	"strconv"

	"github.com/j-veylop/reportbot/internal/models"
)

// Columns of the requests table the report depends on.
const (
	ColumnID      = "id"
	ColumnChatID  = "chat_id"
	ColumnService = "bot"
)

// Records converts the table into usage records. The table must carry the
// id, chat_id and bot columns.
func (t *Table) Records() ([]models.UsageRecord, error) {
	if missing, ok := t.HasColumns(ColumnID, ColumnChatID, ColumnService); !ok {
		return nil, fmt.Errorf("%w: table %q has no %q column", ErrQuery, t.Name, missing)
	}

	records := make([]models.UsageRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		chatID := row[ColumnChatID]
		service := models.UnlabeledService
		if v := row[ColumnService]; v != nil {
			service = cellString(v)
		}
		records = append(records, models.UsageRecord{
			ID:        cellString(row[ColumnID]),
			ChatID:    cellString(chatID),
			Service:   service,
			HasChatID: chatID != nil,
		})
	}
	return records, nil
}

// cellString renders a cell in its canonical text form. NULL becomes "".
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
