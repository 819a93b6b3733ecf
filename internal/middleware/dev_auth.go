// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/webutil"

	"github.com/google/uuid"
)

// DevTenantContextMiddleware は開発・テスト用の認証ミドルウェアです。
// X-Tenant-ID ヘッダーの値をそのまま認証済みテナントIDとして扱います。
// 本番環境では絶対に使用しないこと。
func DevTenantContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		tenantIDStr := r.Header.Get("X-Tenant-ID")
		if tenantIDStr == "" {
			appErr := model.NewAppError("UNAUTHORIZED", "X-Tenant-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		tenantID, err := uuid.Parse(tenantIDStr)
		if err != nil {
			appErr := model.NewAppError("UNAUTHORIZED", "X-Tenant-IDの形式が正しくありません。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.TenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
