// internal/handlers/auth_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_word_memorizer/internal/handlers"
	"go_5_word_memorizer/internal/model"
	"go_5_word_memorizer/internal/service/mocks"
)

func newAuthRouter(mockService *mocks.AuthService) http.Handler {
	handler := handlers.NewAuthHandler(mockService, newTestLogger())
	router := chi.NewRouter()
	router.Post("/api/v1/auth/register", handler.Register)
	router.Post("/api/v1/auth/login", handler.Login)
	router.Post("/api/v1/auth/verify", handler.VerifyAccount)
	router.Post("/api/v1/auth/password/forgot", handler.ForgotPassword)
	router.Post("/api/v1/auth/password/reset", handler.ResetPassword)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	validReq := model.LoginRequest{Email: "taro@example.com", Password: "password123"}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.AuthService)
		expectedStatus int
	}{
		{
			name: "正常系: ログイン成功",
			body: validReq,
			setupMock: func(m *mocks.AuthService) {
				m.On("Login", mock.Anything, &validReq).
					Return(&model.LoginResponse{AccessToken: "signed.jwt.token"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: バリデーションエラー (emailが不正)",
			body:           model.LoginRequest{Email: "not-an-email", Password: "password123"},
			setupMock:      func(m *mocks.AuthService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: 認証失敗",
			body: validReq,
			setupMock: func(m *mocks.AuthService) {
				m.On("Login", mock.Anything, &validReq).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.AuthService)
			tt.setupMock(mockService)
			router := newAuthRouter(mockService)

			rec := doJSONRequest(t, router, http.MethodPost, "/api/v1/auth/login", nil, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.LoginResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, "signed.jwt.token", got.AccessToken)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	validReq := model.RegisterRequest{Name: "taro", Email: "taro@example.com", Password: "password123"}

	t.Run("正常系: 登録成功", func(t *testing.T) {
		mockService := new(mocks.AuthService)
		mockService.On("RegisterTenant", mock.Anything, &validReq).
			Return(&model.Tenant{Name: "taro", Email: "taro@example.com", IsActive: false}, nil).Once()
		router := newAuthRouter(mockService)

		rec := doJSONRequest(t, router, http.MethodPost, "/api/v1/auth/register", nil, validReq)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got model.TenantResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "taro", got.Name)
		assert.False(t, got.IsActive)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: パスワードが短すぎる", func(t *testing.T) {
		mockService := new(mocks.AuthService)
		router := newAuthRouter(mockService)

		body := model.RegisterRequest{Name: "taro", Email: "taro@example.com", Password: "short"}
		rec := doJSONRequest(t, router, http.MethodPost, "/api/v1/auth/register", nil, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "RegisterTenant", mock.Anything, mock.Anything)
	})

	t.Run("異常系: メールアドレスの重複", func(t *testing.T) {
		mockService := new(mocks.AuthService)
		mockService.On("RegisterTenant", mock.Anything, &validReq).
			Return(nil, model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)).Once()
		router := newAuthRouter(mockService)

		rec := doJSONRequest(t, router, http.MethodPost, "/api/v1/auth/register", nil, validReq)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})
}
