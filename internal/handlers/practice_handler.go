// internal/handlers/practice_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/service"
	"go_5_word_memorizer/internal/webutil"
)

type PracticeHandler struct {
	service service.PracticeService
	logger  *slog.Logger
}

func NewPracticeHandler(s service.PracticeService, logger *slog.Logger) *PracticeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeHandler{
		service: s,
		logger:  logger,
	}
}

// StartSession は練習セッションを開始するハンドラ
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	// ボディは省略可能 (省略時は全単語が対象)
	req := model.StartPracticeRequest{}
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			webutil.HandleError(w, logger, err)
			return
		}
	}

	resp, err := h.service.StartSession(r.Context(), tenantID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Practice session started", slog.String("session_id", resp.SessionID.String()))
	webutil.RespondWithJSON(w, logger, http.StatusCreated, resp)
}

// GetSession はセッションの現在状態を返すハンドラ
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("session_id", sessionID.String()))

	resp, err := h.service.GetSession(r.Context(), tenantID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, resp)
}

// SubmitAnswer は現在のステージへの回答1件を適用するハンドラ
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitAnswer"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("session_id", sessionID.String()))

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), tenantID, sessionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, resp)
}

// RestartSession はセッションを最初のステージからやり直すハンドラ
func (h *PracticeHandler) RestartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RestartSession"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("session_id", sessionID.String()))

	resp, err := h.service.RestartSession(r.Context(), tenantID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Practice session restarted")
	webutil.RespondWithJSON(w, logger, http.StatusOK, resp)
}

// FinalizeSession は採点結果をスケジュールへ反映し、セッションを終了するハンドラ
func (h *PracticeHandler) FinalizeSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "FinalizeSession"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("session_id", sessionID.String()))

	resp, err := h.service.FinalizeSession(r.Context(), tenantID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Practice session finalized",
		slog.Int("updated", resp.UpdatedCount),
		slog.Int("skipped", resp.SkippedCount),
	)
	webutil.RespondWithJSON(w, logger, http.StatusOK, resp)
}

// AbandonSession はセッションを破棄するハンドラ。採点結果は一切保存されない
func (h *PracticeHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AbandonSession"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("session_id", sessionID.String()))

	if err := h.service.AbandonSession(r.Context(), tenantID, sessionID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Practice session abandoned")
	w.WriteHeader(http.StatusNoContent)
}
