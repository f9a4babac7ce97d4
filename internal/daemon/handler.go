package daemon

import (
	"os"

	"go.uber.org/zap"

	"github.com/selclip/selclip-daemon/internal/ipc"
	"github.com/selclip/selclip-daemon/internal/types"
	"github.com/selclip/selclip-daemon/pkg/utils"
)

const historyPreviewLen = 60

// handleRequest answers one control-socket request. Commands that move
// clipboard state go through the operation queue like any mouse-driven
// work; the handler itself only reads.
func (d *Daemon) handleRequest(req *ipc.Request) *ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return d.statusResponse()

	case ipc.CommandPaste:
		if !d.enqueue(operation{kind: opPaste}) {
			return ipc.Errorf("operation queue is full, try again")
		}
		return ipc.OK("paste queued")

	case ipc.CommandClear:
		d.secondary.Clear()
		if req.BoolArg("journal") {
			if d.journal == nil {
				return ipc.Errorf("no journal configured")
			}
			if err := d.journal.Clear(); err != nil {
				return ipc.Errorf("clearing journal: %v", err)
			}
			return ipc.OK("secondary clipboard and journal cleared")
		}
		return ipc.OK("secondary clipboard cleared")

	case ipc.CommandHistory:
		return d.historyResponse(req.IntArg("limit", 10))

	default:
		return ipc.Errorf("unknown command %q", req.Command)
	}
}

func (d *Daemon) statusResponse() *ipc.Response {
	data := ipc.StatusData{
		PID:        os.Getpid(),
		Version:    d.version,
		DeviceID:   d.cfg.DeviceID,
		DeviceName: d.cfg.DeviceName,
		StartedAt:  d.startedAt,
	}

	if val, ok := d.secondary.Snapshot(); ok {
		at := val.CapturedAt
		data.SecondarySet = true
		data.SecondaryKind = string(val.Kind)
		data.SecondaryChars = len([]rune(val.Text))
		data.CapturedAt = &at
	}

	if d.journal != nil {
		n, err := d.journal.Count()
		if err != nil {
			d.logger.Warn("Counting journal entries", zap.Error(err))
		}
		data.JournalCount = n
	}

	return ipc.OKData(data)
}

func (d *Daemon) historyResponse(limit int) *ipc.Response {
	var (
		records []*types.CaptureRecord
		err     error
	)
	if d.journal != nil {
		records, err = d.journal.ListRecent(limit)
		if err != nil {
			return ipc.Errorf("reading journal: %v", err)
		}
	} else {
		records = d.recent.Last(limit)
	}

	data := ipc.HistoryData{Entries: make([]ipc.HistoryEntry, 0, len(records))}
	for _, rec := range records {
		data.Entries = append(data.Entries, ipc.HistoryEntry{
			ID:         rec.ID,
			Kind:       string(rec.Kind),
			Preview:    utils.Preview(rec.Text, historyPreviewLen),
			Chars:      len([]rune(rec.Text)),
			CapturedAt: rec.CapturedAt,
		})
	}
	return ipc.OKData(data)
}
