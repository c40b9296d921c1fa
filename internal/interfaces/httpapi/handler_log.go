package httpapi

import "net/http"

func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLogs")
	defer span.End()

	entries, err := h.auditLogService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list logs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]logEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, logEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordLog")
	defer span.End()

	var req logRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.auditLogService.Record(ctx, req.Message)
	if err != nil {
		h.logger.WarnContext(ctx, "record log failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, logEntryToDTO(entry))
}
