// internal/handlers/word_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/service"
	"go_5_word_memorizer/internal/webutil"
)

type WordHandler struct {
	service service.WordService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		logger:  logger,
	}
}

// PostWord は新しい単語リソースを作成するためのハンドラ
func (h *WordHandler) PostWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWord"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.PostWordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.CreateWord(r.Context(), tenantID, &req)
	if err != nil {
		logger.Error("Error creating word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word created successfully", slog.String("word_id", word.WordID.String()))
	webutil.RespondWithJSON(w, logger, http.StatusCreated, word)
}

// GetWords は単語リソースの一覧を取得するためのハンドラ
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWords"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	words, err := h.service.ListWords(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing words in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if words == nil {
		words = []*model.Word{}
	}
	webutil.RespondWithJSON(w, logger, http.StatusOK, words)
}

// GetWord は特定の単語リソースを取得するためのハンドラ
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := parseUUIDParam(w, r, logger, "word_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("word_id", wordID.String()))

	word, err := h.service.GetWord(r.Context(), tenantID, wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, word)
}

// PutWord は単語リソース全体を置き換えるためのハンドラ
func (h *WordHandler) PutWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutWord"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := parseUUIDParam(w, r, logger, "word_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("word_id", wordID.String()))

	var req model.PutWordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.ReplaceWord(r.Context(), tenantID, wordID, &req)
	if err != nil {
		logger.Error("Error replacing word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, word)
}

// PatchWord は単語リソースを部分更新するためのハンドラ
func (h *WordHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := parseUUIDParam(w, r, logger, "word_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("word_id", wordID.String()))

	var req model.PatchWordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.PatchWord(r.Context(), tenantID, wordID, &req)
	if err != nil {
		logger.Error("Error patching word in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, word)
}

// DeleteWord は単語リソースを削除するためのハンドラ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	wordID, ok := parseUUIDParam(w, r, logger, "word_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("word_id", wordID.String()))

	if err := h.service.DeleteWord(r.Context(), tenantID, wordID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
