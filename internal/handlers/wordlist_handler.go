// internal/handlers/wordlist_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/service"
	"go_5_word_memorizer/internal/webutil"
)

type WordListHandler struct {
	service service.WordListService
	logger  *slog.Logger
}

func NewWordListHandler(s service.WordListService, logger *slog.Logger) *WordListHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordListHandler{
		service: s,
		logger:  logger,
	}
}

// PostWordList は新しい単語リストを作成するためのハンドラ
func (h *WordListHandler) PostWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostWordList"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.PostWordListRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if appErr := validateRequest(logger, req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	list, err := h.service.CreateWordList(r.Context(), tenantID, &req)
	if err != nil {
		logger.Error("Error creating word list in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word list created successfully", slog.String("list_id", list.ListID.String()))
	webutil.RespondWithJSON(w, logger, http.StatusCreated, list)
}

// GetWordLists は単語リストの一覧を取得するためのハンドラ
func (h *WordListHandler) GetWordLists(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordLists"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	lists, err := h.service.ListWordLists(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing word lists in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if lists == nil {
		lists = []*model.WordList{}
	}
	webutil.RespondWithJSON(w, logger, http.StatusOK, lists)
}

// GetWordList は特定の単語リストを取得するためのハンドラ
func (h *WordListHandler) GetWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWordList"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	listID, ok := parseUUIDParam(w, r, logger, "list_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("list_id", listID.String()))

	list, err := h.service.GetWordList(r.Context(), tenantID, listID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, logger, http.StatusOK, list)
}

// DeleteWordList は単語リストを削除するためのハンドラ
func (h *WordListHandler) DeleteWordList(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWordList"))

	tenantID, ok := requireTenantID(w, r, logger)
	if !ok {
		return
	}
	listID, ok := parseUUIDParam(w, r, logger, "list_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()), slog.String("list_id", listID.String()))

	if err := h.service.DeleteWordList(r.Context(), tenantID, listID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word list deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
