// internal/handlers/helpers.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_word_memorizer/internal/middleware"
	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// requireTenantID はコンテキストから認証済みテナントIDを取り出します。
// 取得できない場合はエラーレスポンスを書き込み、okにfalseを返します。
func requireTenantID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return tenantID, true
}

// parseUUIDParam はURLパスパラメータをUUIDとしてパースします
func parseUUIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid UUID in URL path", slog.String("param", name), slog.String("value", raw))
		appErr := model.NewAppError("INVALID_PARAMETER", "URLのIDの形式が正しくありません。", name, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}

// validateRequest はリクエストDTOを検証し、最初のエラーを日本語メッセージで返します
func validateRequest(logger *slog.Logger, req interface{}) *model.AppError {
	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))

			// 最初のエラーを代表としてクライアントに返す
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			return model.NewAppError("VALIDATION_ERROR", translatedMsg, firstErr.Field(), model.ErrInvalidInput)
		}
		// バリデーションライブラリ自体のエラーなど、予期せぬエラー
		logger.Error("Unexpected error during validation", slog.Any("error", err))
		return model.NewAppError("VALIDATION_ERROR", "入力値の検証に失敗しました。", "", model.ErrInvalidInput)
	}
	return nil
}
